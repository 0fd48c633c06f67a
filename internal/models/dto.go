package models

import "time"

// QuestionDTO is the question shape served to students. CorrectAnswer and
// Explanation stay server-side until the attempt is over.
type QuestionDTO struct {
	ID           uint   `json:"id"`
	QuizID       uint   `json:"quiz_id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
}

func (q QuizQuestion) ToDTO() QuestionDTO {
	return QuestionDTO{
		ID:           q.ID,
		QuizID:       q.QuizID,
		QuestionText: q.QuestionText,
		OptionA:      q.OptionA,
		OptionB:      q.OptionB,
		OptionC:      q.OptionC,
		OptionD:      q.OptionD,
	}
}

// ProfilePatch applies only the fields the client sent; nil means "leave
// as-is", so an empty body is a no-op update.
type ProfilePatch struct {
	Name     *string `json:"name"`
	Grade    *int    `json:"grade"`
	School   *string `json:"school"`
	PhotoURL *string `json:"photo_url"`
}

func (p ProfilePatch) Apply(profile *Profile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Grade != nil {
		profile.Grade = *p.Grade
	}
	if p.School != nil {
		profile.School = *p.School
	}
	if p.PhotoURL != nil {
		profile.PhotoURL = *p.PhotoURL
	}
}

type DashboardStats struct {
	TotalXP          int     `json:"total_xp"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	QuizzesCompleted int     `json:"quizzes_completed"`
	AverageScore     float64 `json:"average_score"`
	RankInGrade      int     `json:"rank_in_grade"`
}

// ActivityItem is one entry in the merged recent-activity feed.
type ActivityItem struct {
	Type      string    `json:"type"` // "quiz_attempt" or "xp_earned"
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	XPEarned  int       `json:"xp_earned"`
}
