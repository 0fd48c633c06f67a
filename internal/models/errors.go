package models

import "errors"

var (
	// ErrEmailTaken is returned when registration hits an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInactiveAccount is returned for valid tokens on deactivated users.
	ErrInactiveAccount = errors.New("account is inactive")
	// ErrProfileNotFound indicates the user exists but has no profile row.
	ErrProfileNotFound = errors.New("profile not found")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrQuizNotFound     = errors.New("quiz not found")
)
