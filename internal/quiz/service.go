package quiz

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ceyquest-server/internal/models"
	"ceyquest-server/pkg/websocket"

	"gorm.io/gorm"
)

type Service struct {
	repo  *Repository
	wsHub *websocket.Hub
}

func NewService(repo *Repository, wsHub *websocket.Hub) *Service {
	return &Service{
		repo:  repo,
		wsHub: wsHub,
	}
}

func (s *Service) ListQuizzes(subjectID *uint) ([]models.Quiz, error) {
	return s.repo.ListQuizzes(subjectID)
}

func (s *Service) GetQuiz(id uint) (*models.Quiz, error) {
	quiz, err := s.repo.GetQuiz(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// GetQuestions returns a quiz's questions with the answer key and
// explanations stripped out.
func (s *Service) GetQuestions(quizID uint) ([]models.QuestionDTO, error) {
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, err
	}

	questions, err := s.repo.GetQuizQuestions(quizID)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = q.ToDTO()
	}
	return dtos, nil
}

type AttemptInput struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"total_questions"`
	CorrectAnswers int `json:"correct_answers"`
	TimeTaken      int `json:"time_taken"`
}

// SubmitAttempt records a completed quiz run and credits XP from the tier
// table. The submitted score is taken at face value; it is not checked
// against the stored answer key.
func (s *Service) SubmitAttempt(userID, quizID uint, input AttemptInput) (*models.QuizAttempt, error) {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	xpEarned := CalculateQuizXP(input.Score, input.TotalQuestions)

	attempt := &models.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Score:          input.Score,
		TotalQuestions: input.TotalQuestions,
		CorrectAnswers: input.CorrectAnswers,
		TimeTaken:      input.TimeTaken,
		CompletedAt:    time.Now().UTC(),
	}
	xpRecord := &models.XPRecord{
		UserID:      userID,
		XPAmount:    xpEarned,
		Source:      "quiz",
		Description: fmt.Sprintf("Completed quiz: %s", quiz.Title),
	}

	profile, err := s.repo.RecordAttempt(attempt, xpRecord)
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		// Best effort; a dead feed never fails the submission.
		s.wsHub.BroadcastXPAward(profile.Grade, websocket.XPEvent{
			UserID:      userID,
			Name:        profile.Name,
			XPAmount:    xpEarned,
			Description: xpRecord.Description,
		})
	}

	log.Printf("User %d completed quiz %d, earned %d XP", userID, quizID, xpEarned)
	return attempt, nil
}

func (s *Service) GetMyAttempts(userID uint) ([]models.QuizAttempt, error) {
	return s.repo.GetAttemptsByUser(userID)
}
