package quiz

import (
	"ceyquest-server/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListQuizzes(subjectID *uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	query := r.db.Where("is_active = ?", true)
	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}
	if err := query.Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *Repository) GetQuiz(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *Repository) GetQuizQuestions(quizID uint) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	if err := r.db.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *Repository) GetAttemptsByUser(userID uint) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

// RecordAttempt persists the attempt, the XP ledger entry, and the profile
// increment as one transaction. A failure at any step rolls all of it back,
// so XP is never credited without its ledger row or attempt row. Returns the
// updated profile.
func (r *Repository) RecordAttempt(attempt *models.QuizAttempt, xpRecord *models.XPRecord) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		if err := tx.Create(xpRecord).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", attempt.UserID).First(&profile).Error; err != nil {
			return err
		}

		profile.TotalXP += xpRecord.XPAmount
		// Streak logic could be added here.
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
