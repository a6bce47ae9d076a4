package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// AssignmentStore is the data access surface the assignment service needs
type AssignmentStore interface {
	Create(ctx context.Context, assignment *models.Assignment) (int64, error)
	GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Assignment, error)
	CreateSubmission(ctx context.Context, submission *models.AssignmentSubmission) (int64, error)
	GetSubmissionsByAssignmentID(ctx context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error)
	DeleteSubmission(ctx context.Context, submissionID int64) error
}

// AssignmentService defines the interface for assignment operations
type AssignmentService interface {
	CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest) (*models.Assignment, error)
	GetAssignments(ctx context.Context, classroomID int64) ([]*models.Assignment, error)
	SubmitAssignment(ctx context.Context, req *dto.SubmitAssignmentRequest) error
	GetSubmissions(ctx context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error)
	DeleteSubmission(ctx context.Context, submissionID int64) error
}

// assignmentServiceImpl implements AssignmentService
type assignmentServiceImpl struct {
	assignmentRepo AssignmentStore
	logger         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignmentRepo AssignmentStore, logger zerolog.Logger) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// CreateAssignment creates a new assignment in a classroom
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid due date")
	}

	assignment := &models.Assignment{
		PrivateClassroomID: req.PrivateClassroomID,
		Email:              req.Email,
		Title:              req.Title,
		Desc:               req.Desc,
		DueDate:            dueDate,
	}

	if _, err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		s.logger.Error().Err(err).
			Int64("classroomID", req.PrivateClassroomID).
			Msg("Failed to create assignment")
		return nil, err
	}

	return assignment, nil
}

// GetAssignments returns a classroom's assignments, newest first
func (s *assignmentServiceImpl) GetAssignments(ctx context.Context, classroomID int64) ([]*models.Assignment, error) {
	assignments, err := s.assignmentRepo.GetByClassroomID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, apperrors.NewNotFoundError("No assignments found for the given Private Classroom ID")
	}
	return assignments, nil
}

// SubmitAssignment records a student's submission
func (s *assignmentServiceImpl) SubmitAssignment(ctx context.Context, req *dto.SubmitAssignmentRequest) error {
	submission := &models.AssignmentSubmission{
		AssignmentID: req.AssignmentID,
		Email:        req.Email,
		Description:  req.Description,
		Base64String: req.Base64String,
		FileType:     req.FileType,
	}

	if _, err := s.assignmentRepo.CreateSubmission(ctx, submission); err != nil {
		s.logger.Error().Err(err).
			Int64("assignmentID", req.AssignmentID).
			Msg("Failed to save assignment submission")
		return err
	}

	return nil
}

// GetSubmissions returns every submission for an assignment
func (s *assignmentServiceImpl) GetSubmissions(ctx context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error) {
	submissions, err := s.assignmentRepo.GetSubmissionsByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, apperrors.NewNotFoundError("No submissions found for this assignment")
	}
	return submissions, nil
}

// DeleteSubmission removes a submission by ID
func (s *assignmentServiceImpl) DeleteSubmission(ctx context.Context, submissionID int64) error {
	if err := s.assignmentRepo.DeleteSubmission(ctx, submissionID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewNotFoundError("Assignment submission not found")
		}
		return err
	}
	return nil
}
