package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// RoomRepository handles database operations for video meeting rooms
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a new room with the rosters the caller provides
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) (int64, error) {
	query := `
		INSERT INTO rooms (
			room_name, host, meet_type, meet_date, meet_time, classroom_id,
			participants, current_participants
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		room.RoomName,
		room.Host,
		room.MeetType,
		room.MeetDate,
		room.MeetTime,
		room.ClassroomID,
		room.Participants,
		room.CurrentParticipants,
	).Scan(&id, &room.CreatedAt, &room.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating room: %w", err)
	}

	room.ID = id
	return id, nil
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	query := `
		SELECT id, room_name, host, meet_type, meet_date, meet_time, classroom_id,
			participants, current_participants, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`

	var room models.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.RoomName,
		&room.Host,
		&room.MeetType,
		&room.MeetDate,
		&room.MeetTime,
		&room.ClassroomID,
		&room.Participants,
		&room.CurrentParticipants,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}

	return &room, nil
}

// AddParticipant adds a user to both rosters with set semantics. A
// single statement keeps concurrent joins from clobbering each other.
func (r *RoomRepository) AddParticipant(ctx context.Context, roomID, userID int64) (*models.Room, error) {
	query := `
		UPDATE rooms
		SET participants = CASE
				WHEN $2 = ANY(participants) THEN participants
				ELSE array_append(participants, $2)
			END,
			current_participants = CASE
				WHEN $2 = ANY(current_participants) THEN current_participants
				ELSE array_append(current_participants, $2)
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, room_name, host, meet_type, meet_date, meet_time, classroom_id,
			participants, current_participants, created_at, updated_at
	`

	var room models.Room
	err := r.db.QueryRow(ctx, query, roomID, userID).Scan(
		&room.ID,
		&room.RoomName,
		&room.Host,
		&room.MeetType,
		&room.MeetDate,
		&room.MeetTime,
		&room.ClassroomID,
		&room.Participants,
		&room.CurrentParticipants,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error adding room participant: %w", err)
	}

	return &room, nil
}

// RemoveCurrentParticipant removes a user from the live roster only.
// The historical participants roster is left untouched.
func (r *RoomRepository) RemoveCurrentParticipant(ctx context.Context, roomID, userID int64) (*models.Room, error) {
	query := `
		UPDATE rooms
		SET current_participants = array_remove(current_participants, $2),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, room_name, host, meet_type, meet_date, meet_time, classroom_id,
			participants, current_participants, created_at, updated_at
	`

	var room models.Room
	err := r.db.QueryRow(ctx, query, roomID, userID).Scan(
		&room.ID,
		&room.RoomName,
		&room.Host,
		&room.MeetType,
		&room.MeetDate,
		&room.MeetTime,
		&room.ClassroomID,
		&room.Participants,
		&room.CurrentParticipants,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error removing room participant: %w", err)
	}

	return &room, nil
}
