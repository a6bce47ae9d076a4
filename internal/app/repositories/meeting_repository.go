package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
)

// MeetingRepository handles database operations for recorded meetings
type MeetingRepository struct {
	db *pgxpool.Pool
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts a new meeting record
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) (int64, error) {
	query := `
		INSERT INTO meetings (room_id, audio_url, transcription_url, processed_transcription_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		meeting.RoomID,
		meeting.AudioURL,
		meeting.TranscriptionURL,
		meeting.ProcessedTranscriptionURL,
	).Scan(&id, &meeting.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating meeting: %w", err)
	}

	meeting.ID = id
	return id, nil
}

// GetByRoomID retrieves all meeting records for a room
func (r *MeetingRepository) GetByRoomID(ctx context.Context, roomID int64) ([]*models.Meeting, error) {
	query := `
		SELECT id, room_id, audio_url, transcription_url, processed_transcription_url, created_at
		FROM meetings
		WHERE room_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*models.Meeting
	for rows.Next() {
		var meeting models.Meeting
		err := rows.Scan(
			&meeting.ID,
			&meeting.RoomID,
			&meeting.AudioURL,
			&meeting.TranscriptionURL,
			&meeting.ProcessedTranscriptionURL,
			&meeting.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning meeting row: %w", err)
		}
		meetings = append(meetings, &meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}

	return meetings, nil
}
