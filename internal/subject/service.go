package subject

import (
	"errors"

	"ceyquest-server/internal/models"

	"gorm.io/gorm"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListSubjects(grade *int) ([]models.Subject, error) {
	return s.repo.ListSubjects(grade)
}

func (s *Service) GetSubject(id uint) (*models.Subject, error) {
	subject, err := s.repo.GetSubject(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

// ListResources checks the subject exists before filtering its resources so a
// bad subject ID reads as 404 rather than an empty list.
func (s *Service) ListResources(subjectID uint, resourceType string) ([]models.Resource, error) {
	if _, err := s.GetSubject(subjectID); err != nil {
		return nil, err
	}
	return s.repo.ListResources(subjectID, resourceType)
}

func (s *Service) GetResource(id uint) (*models.Resource, error) {
	resource, err := s.repo.GetResource(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrResourceNotFound
		}
		return nil, err
	}
	return resource, nil
}
