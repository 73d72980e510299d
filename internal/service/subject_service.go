package service

import "github.com/noah-isme/tutor-marketplace-api/internal/models"

// SubjectService exposes the fixed subject catalogue.
type SubjectService struct{}

// NewSubjectService creates a new subject service.
func NewSubjectService() *SubjectService {
	return &SubjectService{}
}

// List returns every subject a class may be registered for.
func (s *SubjectService) List() []models.Subject {
	return models.Subjects()
}
