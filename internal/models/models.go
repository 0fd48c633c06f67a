package models

import (
	"time"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"not null"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile carries the denormalized per-user progress counters. total_xp is
// only ever incremented by the scoring path; the streak fields exist in the
// schema but no code path maintains them yet.
type Profile struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	Name          string    `json:"name" gorm:"not null"`
	Grade         int       `json:"grade" gorm:"not null"` // 6-11 for O/L students
	School        string    `json:"school"`
	PhotoURL      string    `json:"photo_url"`
	TotalXP       int       `json:"total_xp" gorm:"default:0"`
	CurrentStreak int       `json:"current_streak" gorm:"default:0"`
	LongestStreak int       `json:"longest_streak" gorm:"default:0"`
	LastLogin     time.Time `json:"last_login"`
}

type Subject struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Grade       int    `json:"grade" gorm:"not null"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

type Resource struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SubjectID    uint      `json:"subject_id" gorm:"not null;index"`
	Title        string    `json:"title" gorm:"not null"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	ResourceType string    `json:"resource_type"` // "textbook", "note", "summary"
	Chapter      string    `json:"chapter"`
	PageNumber   int       `json:"page_number"`
	CreatedAt    time.Time `json:"created_at"`
}

type Quiz struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	SubjectID      uint           `json:"subject_id" gorm:"not null;index"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description"`
	TimeLimit      int            `json:"time_limit"` // in minutes
	TotalQuestions int            `json:"total_questions" gorm:"default:0"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	Questions      []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

type QuizQuestion struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	QuizID        uint   `json:"quiz_id" gorm:"not null;index"`
	QuestionText  string `json:"question_text" gorm:"type:text;not null"`
	OptionA       string `json:"option_a" gorm:"not null"`
	OptionB       string `json:"option_b" gorm:"not null"`
	OptionC       string `json:"option_c" gorm:"not null"`
	OptionD       string `json:"option_d" gorm:"not null"`
	CorrectAnswer string `json:"correct_answer" gorm:"not null"` // "A", "B", "C", "D"
	Explanation   string `json:"explanation" gorm:"type:text"`
}

// QuizAttempt is append-only history; rows are never updated after creation.
type QuizAttempt struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	QuizID         uint      `json:"quiz_id" gorm:"not null;index"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	CorrectAnswers int       `json:"correct_answers" gorm:"not null"`
	TimeTaken      int       `json:"time_taken"` // in seconds
	CompletedAt    time.Time `json:"completed_at"`
}

// XPRecord is the append-only XP ledger. The sum of a user's xp_amount values
// tracks Profile.TotalXP.
type XPRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	XPAmount    int       `json:"xp_amount" gorm:"not null"`
	Source      string    `json:"source" gorm:"not null"` // "quiz", "streak", "achievement"
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Leaderboard is a denormalized projection over profiles, one row per user per
// grade cohort. This service only reads it; population is an external
// materialization job.
type Leaderboard struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null;index"`
	Grade            int       `json:"grade" gorm:"not null;index"`
	TotalXP          int       `json:"total_xp" gorm:"default:0"`
	CurrentStreak    int       `json:"current_streak" gorm:"default:0"`
	QuizzesCompleted int       `json:"quizzes_completed" gorm:"default:0"`
	AverageScore     float64   `json:"average_score" gorm:"default:0"`
	LastUpdated      time.Time `json:"last_updated"`
}

func (Leaderboard) TableName() string {
	return "leaderboards"
}
