package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// RoomStore is the data access surface the room service needs
type RoomStore interface {
	Create(ctx context.Context, room *models.Room) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	AddParticipant(ctx context.Context, roomID, userID int64) (*models.Room, error)
	RemoveCurrentParticipant(ctx context.Context, roomID, userID int64) (*models.Room, error)
}

// UserNameResolver resolves user IDs to display names
type UserNameResolver interface {
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// RoomService defines the interface for video meeting room operations
type RoomService interface {
	CreateRoom(ctx context.Context, host int64, roomName, meetType, meetDate, meetTime string, classroomID *int64) (*models.Room, error)
	RoomExists(ctx context.Context, roomID int64) (bool, error)
	GetRoom(ctx context.Context, roomID int64) (*models.Room, error)
	JoinRoom(ctx context.Context, roomID, userID int64) (*models.Room, error)
	LeaveRoom(ctx context.Context, roomID, userID int64) error
	Participants(ctx context.Context, roomID int64) (string, map[string]string, error)
}

// roomServiceImpl implements RoomService
type roomServiceImpl struct {
	roomRepo RoomStore
	userRepo UserNameResolver
	logger   zerolog.Logger
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo RoomStore, userRepo UserNameResolver, logger zerolog.Logger) RoomService {
	return &roomServiceImpl{
		roomRepo: roomRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateRoom creates a meeting room with empty rosters
func (s *roomServiceImpl) CreateRoom(ctx context.Context, host int64, roomName, meetType, meetDate, meetTime string, classroomID *int64) (*models.Room, error) {
	room := &models.Room{
		RoomName:            roomName,
		Host:                host,
		MeetType:            meetType,
		MeetDate:            meetDate,
		MeetTime:            meetTime,
		ClassroomID:         classroomID,
		Participants:        []int64{},
		CurrentParticipants: []int64{},
	}

	if _, err := s.roomRepo.Create(ctx, room); err != nil {
		s.logger.Error().Err(err).
			Int64("host", host).
			Msg("Failed to create room")
		return nil, err
	}

	return room, nil
}

// RoomExists reports whether a room with the given ID exists
func (s *roomServiceImpl) RoomExists(ctx context.Context, roomID int64) (bool, error) {
	_, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRoomNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetRoom retrieves a room by ID
func (s *roomServiceImpl) GetRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	return s.roomRepo.GetByID(ctx, roomID)
}

// JoinRoom adds a user to both rosters. Joining twice is a no-op.
func (s *roomServiceImpl) JoinRoom(ctx context.Context, roomID, userID int64) (*models.Room, error) {
	return s.roomRepo.AddParticipant(ctx, roomID, userID)
}

// LeaveRoom removes a user from the live roster. The historical roster
// keeps everyone who ever joined.
func (s *roomServiceImpl) LeaveRoom(ctx context.Context, roomID, userID int64) error {
	_, err := s.roomRepo.RemoveCurrentParticipant(ctx, roomID, userID)
	return err
}

// Participants resolves the live roster to display names keyed by the
// participant's ID. Name lookup failures degrade to whatever subset
// resolved, never to an error.
func (s *roomServiceImpl) Participants(ctx context.Context, roomID int64) (string, map[string]string, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return "", nil, err
	}

	usernames := make(map[string]string, len(room.CurrentParticipants))
	if len(room.CurrentParticipants) > 0 {
		names, err := s.userRepo.GetNamesByIDs(ctx, room.CurrentParticipants)
		if err != nil {
			s.logger.Error().Err(err).
				Int64("roomID", roomID).
				Msg("Failed to resolve participant names")
		} else {
			for id, name := range names {
				usernames[strconv.FormatInt(id, 10)] = name
			}
		}
	}

	return room.RoomName, usernames, nil
}
