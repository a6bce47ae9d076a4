package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
)

// ClassStore is the data access surface the class service needs
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) (int64, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
}

// ClassService defines the interface for class operations
type ClassService interface {
	AddClass(ctx context.Context, classname, desc string) (*models.Class, error)
	GetClasses(ctx context.Context) ([]*models.Class, error)
}

// classServiceImpl implements ClassService
type classServiceImpl struct {
	classRepo ClassStore
	logger    zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(classRepo ClassStore, logger zerolog.Logger) ClassService {
	return &classServiceImpl{
		classRepo: classRepo,
		logger:    logger,
	}
}

// AddClass creates a new class with a sequential join code
func (s *classServiceImpl) AddClass(ctx context.Context, classname, desc string) (*models.Class, error) {
	class := &models.Class{
		Classname: classname,
		Desc:      desc,
	}

	if _, err := s.classRepo.Create(ctx, class); err != nil {
		s.logger.Error().Err(err).
			Str("classname", classname).
			Msg("Failed to create class")
		return nil, err
	}

	return class, nil
}

// GetClasses returns every class
func (s *classServiceImpl) GetClasses(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.classRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []*models.Class{}
	}
	return classes, nil
}
