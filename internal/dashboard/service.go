package dashboard

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"ceyquest-server/internal/models"
	"ceyquest-server/internal/quiz"
	"ceyquest-server/pkg/cache"

	"gorm.io/gorm"
)

const (
	DefaultLeaderboardLimit = 20
	DefaultHistoryLimit     = 50
	DefaultActivityLimit    = 10
)

type Service struct {
	repo  *Repository
	cache *cache.RedisCache
}

func NewService(repo *Repository, cache *cache.RedisCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetStats(userID uint) (*models.DashboardStats, error) {
	profile, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProfileNotFound
		}
		return nil, err
	}

	attempts, avgScore, err := s.repo.GetAttemptStats(userID)
	if err != nil {
		return nil, err
	}

	above, err := s.repo.CountRankedAbove(profile.Grade, profile.TotalXP)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalXP:          profile.TotalXP,
		CurrentStreak:    profile.CurrentStreak,
		LongestStreak:    profile.LongestStreak,
		QuizzesCompleted: int(attempts),
		AverageScore:     avgScore,
		RankInGrade:      int(above) + 1,
	}, nil
}

// GetLeaderboard serves the cohort board from the redis snapshot when it is
// warm, falling back to (and refilling from) the projection table. The
// projection itself is maintained by an external job; this path never writes
// it.
func (s *Service) GetLeaderboard(grade *int, limit int) ([]models.Leaderboard, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	if s.cache != nil {
		entries, err := s.cache.GetLeaderboard(grade, limit)
		if err == nil {
			return entries, nil
		}
	}

	entries, err := s.repo.GetLeaderboard(grade, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLeaderboard(grade, limit, entries); err != nil {
			log.Printf("Error caching leaderboard snapshot: %v", err)
		}
	}
	return entries, nil
}

func (s *Service) GetXPHistory(userID uint, limit int) ([]models.XPRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.GetXPHistory(userID, limit)
}

// GetRecentActivity merges the user's latest attempts and XP ledger entries
// into one feed, newest first.
func (s *Service) GetRecentActivity(userID uint, limit int) ([]models.ActivityItem, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	attempts, err := s.repo.GetRecentAttempts(userID, limit)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.GetXPHistory(userID, limit)
	if err != nil {
		return nil, err
	}

	activities := make([]models.ActivityItem, 0, len(attempts)+len(records))
	for _, attempt := range attempts {
		activities = append(activities, models.ActivityItem{
			Type:      "quiz_attempt",
			ID:        attempt.ID,
			Title:     fmt.Sprintf("Completed quiz (Score: %d/%d)", attempt.Score, attempt.TotalQuestions),
			Timestamp: attempt.CompletedAt,
			XPEarned:  quiz.CalculateQuizXP(attempt.Score, attempt.TotalQuestions),
		})
	}
	for _, record := range records {
		activities = append(activities, models.ActivityItem{
			Type:      "xp_earned",
			ID:        record.ID,
			Title:     fmt.Sprintf("Earned %d XP - %s", record.XPAmount, record.Description),
			Timestamp: record.CreatedAt,
			XPEarned:  record.XPAmount,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})

	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
