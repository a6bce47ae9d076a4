package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// AssignmentRepository handles database operations for assignments and
// their submissions
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts a new assignment into the database
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) (int64, error) {
	query := `
		INSERT INTO assignments (private_classroom_id, email, title, description, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		assignment.PrivateClassroomID,
		assignment.Email,
		assignment.Title,
		assignment.Desc,
		assignment.DueDate,
	).Scan(&id, &assignment.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating assignment: %w", err)
	}

	assignment.ID = id
	return id, nil
}

// GetByClassroomID retrieves all assignments for a classroom
func (r *AssignmentRepository) GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Assignment, error) {
	query := `
		SELECT id, private_classroom_id, email, title, description, due_date, created_at
		FROM assignments
		WHERE private_classroom_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var assignment models.Assignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.PrivateClassroomID,
			&assignment.Email,
			&assignment.Title,
			&assignment.Desc,
			&assignment.DueDate,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}

	return assignments, nil
}

// CreateSubmission inserts a new assignment submission
func (r *AssignmentRepository) CreateSubmission(ctx context.Context, submission *models.AssignmentSubmission) (int64, error) {
	query := `
		INSERT INTO assignment_submissions (assignment_id, email, description, base64_string, file_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, timestamp
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		submission.AssignmentID,
		submission.Email,
		submission.Description,
		submission.Base64String,
		submission.FileType,
	).Scan(&id, &submission.Timestamp)

	if err != nil {
		return 0, fmt.Errorf("error creating assignment submission: %w", err)
	}

	submission.ID = id
	return id, nil
}

// GetSubmissionsByAssignmentID retrieves all submissions for an assignment
func (r *AssignmentRepository) GetSubmissionsByAssignmentID(ctx context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error) {
	query := `
		SELECT id, assignment_id, email, description, base64_string, file_type, timestamp
		FROM assignment_submissions
		WHERE assignment_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving assignment submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.AssignmentSubmission
	for rows.Next() {
		var submission models.AssignmentSubmission
		err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.Email,
			&submission.Description,
			&submission.Base64String,
			&submission.FileType,
			&submission.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment submission row: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment submission rows: %w", err)
	}

	return submissions, nil
}

// DeleteSubmission removes a submission by ID
func (r *AssignmentRepository) DeleteSubmission(ctx context.Context, submissionID int64) error {
	query := `DELETE FROM assignment_submissions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, submissionID)
	if err != nil {
		return fmt.Errorf("error deleting assignment submission: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
