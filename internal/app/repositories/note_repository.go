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

// NoteRepository handles database operations for study notes
type NoteRepository struct {
	db *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a new note into the database
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	query := `
		INSERT INTO notes (title, content, file_url, file_type, classroom_id, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		note.Title,
		note.Content,
		note.FileURL,
		note.FileType,
		note.ClassroomID,
		note.Email,
	).Scan(&id, &note.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating note: %w", err)
	}

	note.ID = id
	return id, nil
}

// GetByClassroomID retrieves all notes for a classroom, newest first
func (r *NoteRepository) GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Note, error) {
	query := `
		SELECT id, title, content, file_url, file_type, classroom_id, email, created_at
		FROM notes
		WHERE classroom_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.FileURL,
			&note.FileType,
			&note.ClassroomID,
			&note.Email,
			&note.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note row: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}

	return notes, nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `
		SELECT id, title, content, file_url, file_type, classroom_id, email, created_at
		FROM notes
		WHERE id = $1
	`

	var note models.Note
	err := r.db.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.FileURL,
		&note.FileType,
		&note.ClassroomID,
		&note.Email,
		&note.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("error retrieving note: %w", err)
	}

	return &note, nil
}
