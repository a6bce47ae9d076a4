package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// ClassroomStore is the data access surface the classroom service needs
type ClassroomStore interface {
	Create(ctx context.Context, classroom *models.PrivateClassroom) (int64, error)
	NameExists(ctx context.Context, name string) (bool, error)
	GetByClass(ctx context.Context, classID int64, ownedByUserID *int64, excludeUserID *int64) ([]*models.PrivateClassroom, error)
}

// ClassroomService defines the interface for private classroom operations
type ClassroomService interface {
	CreatePrivateClassroom(ctx context.Context, req *dto.CreatePrivateClassroomRequest) (*models.PrivateClassroom, error)
	GetPrivateClassrooms(ctx context.Context, classID, userID int64) ([]*models.PrivateClassroom, error)
	GetUserPrivateClassrooms(ctx context.Context, classID, userID int64) ([]*models.PrivateClassroom, error)
}

// classroomServiceImpl implements ClassroomService
type classroomServiceImpl struct {
	classroomRepo ClassroomStore
	logger        zerolog.Logger
}

// NewClassroomService creates a new ClassroomService
func NewClassroomService(classroomRepo ClassroomStore, logger zerolog.Logger) ClassroomService {
	return &classroomServiceImpl{
		classroomRepo: classroomRepo,
		logger:        logger,
	}
}

// CreatePrivateClassroom creates a classroom with a globally unique name
func (s *classroomServiceImpl) CreatePrivateClassroom(ctx context.Context, req *dto.CreatePrivateClassroomRequest) (*models.PrivateClassroom, error) {
	exists, err := s.classroomRepo.NameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrClassroomAlreadyExists
	}

	classroom := &models.PrivateClassroom{
		UserID:      req.UserID,
		UserEmail:   req.UserEmail,
		ClassroomID: req.ClassroomID,
		Name:        req.Name,
		Password:    req.Password,
	}

	if _, err := s.classroomRepo.Create(ctx, classroom); err != nil {
		s.logger.Error().Err(err).
			Str("name", req.Name).
			Msg("Failed to create private classroom")
		return nil, err
	}

	return classroom, nil
}

// GetPrivateClassrooms returns classrooms in a class owned by other users
func (s *classroomServiceImpl) GetPrivateClassrooms(ctx context.Context, classID, userID int64) ([]*models.PrivateClassroom, error) {
	classrooms, err := s.classroomRepo.GetByClass(ctx, classID, nil, &userID)
	if err != nil {
		return nil, err
	}
	if len(classrooms) == 0 {
		return nil, apperrors.NewNotFoundError("No private classrooms found for the given classroom ID and user ID")
	}
	return classrooms, nil
}

// GetUserPrivateClassrooms returns the caller's own classrooms in a class
func (s *classroomServiceImpl) GetUserPrivateClassrooms(ctx context.Context, classID, userID int64) ([]*models.PrivateClassroom, error) {
	classrooms, err := s.classroomRepo.GetByClass(ctx, classID, &userID, nil)
	if err != nil {
		return nil, err
	}
	if len(classrooms) == 0 {
		return nil, apperrors.NewNotFoundError("No private classrooms found for the given classroom ID and user ID")
	}
	return classrooms, nil
}
