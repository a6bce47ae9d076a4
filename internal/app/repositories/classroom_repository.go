package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
)

// ClassroomRepository handles database operations for private classrooms
type ClassroomRepository struct {
	db *pgxpool.Pool
}

// NewClassroomRepository creates a new ClassroomRepository
func NewClassroomRepository(db *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// Create inserts a new private classroom into the database
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.PrivateClassroom) (int64, error) {
	query := `
		INSERT INTO private_classrooms (user_id, user_email, classroom_id, name, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		classroom.UserID,
		classroom.UserEmail,
		classroom.ClassroomID,
		classroom.Name,
		classroom.Password,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating private classroom: %w", err)
	}

	classroom.ID = id
	return id, nil
}

// NameExists checks if a private classroom with the given name exists
func (r *ClassroomRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM private_classrooms WHERE name = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking classroom name existence: %w", err)
	}

	return exists, nil
}

// GetByClass retrieves private classrooms under a class with optional
// filters on the owning user
func (r *ClassroomRepository) GetByClass(ctx context.Context, classID int64, ownedByUserID *int64, excludeUserID *int64) ([]*models.PrivateClassroom, error) {
	queryBuilder := squirrel.Select(
		"id", "user_id", "user_email", "classroom_id", "name", "password",
	).
		From("private_classrooms").
		Where("classroom_id = ?", classID).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	if ownedByUserID != nil {
		queryBuilder = queryBuilder.Where("user_id = ?", *ownedByUserID)
	}
	if excludeUserID != nil {
		queryBuilder = queryBuilder.Where("user_id <> ?", *excludeUserID)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving private classrooms: %w", err)
	}
	defer rows.Close()

	var classrooms []*models.PrivateClassroom
	for rows.Next() {
		var classroom models.PrivateClassroom
		err := rows.Scan(
			&classroom.ID,
			&classroom.UserID,
			&classroom.UserEmail,
			&classroom.ClassroomID,
			&classroom.Name,
			&classroom.Password,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning private classroom row: %w", err)
		}
		classrooms = append(classrooms, &classroom)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating private classroom rows: %w", err)
	}

	return classrooms, nil
}

// GetByID retrieves a private classroom by ID
func (r *ClassroomRepository) GetByID(ctx context.Context, id int64) (*models.PrivateClassroom, error) {
	query := `
		SELECT id, user_id, user_email, classroom_id, name, password
		FROM private_classrooms
		WHERE id = $1
	`

	var classroom models.PrivateClassroom
	err := r.db.QueryRow(ctx, query, id).Scan(
		&classroom.ID,
		&classroom.UserID,
		&classroom.UserEmail,
		&classroom.ClassroomID,
		&classroom.Name,
		&classroom.Password,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("private classroom not found with ID %d", id)
		}
		return nil, fmt.Errorf("error retrieving private classroom: %w", err)
	}

	return &classroom, nil
}
