package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
)

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create inserts a new announcement into the database
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) (int64, error) {
	query := `
		INSERT INTO announcements (private_classroom_id, email, announcement_data)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		announcement.PrivateClassroomID,
		announcement.Email,
		announcement.AnnouncementData,
	).Scan(&id, &announcement.Timestamp)

	if err != nil {
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}

	announcement.ID = id
	return id, nil
}

// GetByClassroomID retrieves all announcements for a classroom
func (r *AnnouncementRepository) GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Announcement, error) {
	query := `
		SELECT id, private_classroom_id, email, announcement_data, timestamp
		FROM announcements
		WHERE private_classroom_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := r.db.Query(ctx, query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		var announcement models.Announcement
		err := rows.Scan(
			&announcement.ID,
			&announcement.PrivateClassroomID,
			&announcement.Email,
			&announcement.AnnouncementData,
			&announcement.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, &announcement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, nil
}
