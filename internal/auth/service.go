package auth

import (
	"errors"
	"time"

	"ceyquest-server/internal/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenLifetime is the fixed lifetime of issued access tokens.
const TokenLifetime = 24 * time.Hour

type Service struct {
	repo      *Repository
	jwtSecret []byte
}

func NewService(repo *Repository, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Grade    int    `json:"grade"`
	School   string `json:"school"`
}

// Register creates the account plus its profile and returns a signed token.
func (s *Service) Register(input RegisterInput) (string, error) {
	taken, err := s.repo.EmailExists(input.Email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", models.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Email:          input.Email,
		HashedPassword: string(hashed),
		IsActive:       true,
	}
	profile := &models.Profile{
		Name:      input.Name,
		Grade:     input.Grade,
		School:    input.School,
		LastLogin: time.Now().UTC(),
	}
	if err := s.repo.CreateUserWithProfile(user, profile); err != nil {
		return "", err
	}

	return s.issueToken(user.Email)
}

func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return s.issueToken(user.Email)
}

// issueToken signs an HS256 token keyed by the user's email.
func (s *Service) issueToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(TokenLifetime).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// UserFromToken verifies a bearer token and resolves it to an active user.
func (s *Service) UserFromToken(tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	email, ok := (*claims)["sub"].(string)
	if !ok || email == "" {
		return nil, errors.New("token missing subject")
	}

	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrInactiveAccount
	}
	return user, nil
}

func (s *Service) GetProfile(userID uint) (*models.Profile, error) {
	profile, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies a partial patch; fields absent from the request keep
// their current values.
func (s *Service) UpdateProfile(userID uint, patch models.ProfilePatch) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(profile)
	if err := s.repo.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
