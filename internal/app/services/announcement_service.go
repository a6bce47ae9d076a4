package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// AnnouncementStore is the data access surface the announcement service needs
type AnnouncementStore interface {
	Create(ctx context.Context, announcement *models.Announcement) (int64, error)
	GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Announcement, error)
}

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, classroomID int64, email, data string) (*models.Announcement, error)
	GetAnnouncements(ctx context.Context, classroomID int64) ([]*models.Announcement, error)
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	announcementRepo AnnouncementStore
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo AnnouncementStore, logger zerolog.Logger) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// CreateAnnouncement posts an announcement to a classroom
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, classroomID int64, email, data string) (*models.Announcement, error) {
	announcement := &models.Announcement{
		PrivateClassroomID: classroomID,
		Email:              email,
		AnnouncementData:   data,
	}

	if _, err := s.announcementRepo.Create(ctx, announcement); err != nil {
		s.logger.Error().Err(err).
			Int64("classroomID", classroomID).
			Msg("Failed to create announcement")
		return nil, err
	}

	return announcement, nil
}

// GetAnnouncements returns a classroom's announcements, newest first
func (s *announcementServiceImpl) GetAnnouncements(ctx context.Context, classroomID int64) ([]*models.Announcement, error) {
	announcements, err := s.announcementRepo.GetByClassroomID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if len(announcements) == 0 {
		return nil, apperrors.NewNotFoundError("No announcements found for the given Private Classroom ID")
	}
	return announcements, nil
}
