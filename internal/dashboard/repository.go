package dashboard

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

func (r *Repository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

type attemptStats struct {
	TotalAttempts int64
	AvgScore      float64
}

func (r *Repository) GetAttemptStats(userID uint) (int64, float64, error) {
	var stats attemptStats
	err := r.db.Model(&models.QuizAttempt{}).
		Select("COUNT(id) AS total_attempts, COALESCE(AVG(score), 0) AS avg_score").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	return stats.TotalAttempts, stats.AvgScore, nil
}

// CountRankedAbove counts cohort members with strictly greater XP. Rank is
// 1 + that count, so equal-XP users share a rank and the next distinct XP
// value lands past the tie block.
func (r *Repository) CountRankedAbove(grade, totalXP int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Leaderboard{}).
		Where("grade = ? AND total_xp > ?", grade, totalXP).
		Count(&count).Error
	return count, err
}

func (r *Repository) GetLeaderboard(grade *int, limit int) ([]models.Leaderboard, error) {
	var entries []models.Leaderboard
	query := r.db.Order("total_xp DESC")
	if grade != nil {
		query = query.Where("grade = ?", *grade)
	}
	if err := query.Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repository) GetXPHistory(userID uint, limit int) ([]models.XPRecord, error) {
	var records []models.XPRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) GetRecentAttempts(userID uint, limit int) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
