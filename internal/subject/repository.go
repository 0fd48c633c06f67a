package subject

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

func (r *Repository) ListSubjects(grade *int) ([]models.Subject, error) {
	var subjects []models.Subject
	query := r.db.Where("is_active = ?", true)
	if grade != nil {
		query = query.Where("grade = ?", *grade)
	}
	if err := query.Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *Repository) GetSubject(id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *Repository) ListResources(subjectID uint, resourceType string) ([]models.Resource, error) {
	var resources []models.Resource
	query := r.db.Where("subject_id = ?", subjectID)
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *Repository) GetResource(id uint) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}
