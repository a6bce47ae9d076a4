package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
)

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class. The join code is assigned from a sequence
// so every class gets the next sequential code.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	query := `
		INSERT INTO classes (classname, description)
		VALUES ($1, $2)
		RETURNING id, classcode
	`

	var id, classcode int64
	err := r.db.QueryRow(ctx, query,
		class.Classname,
		class.Desc,
	).Scan(&id, &classcode)

	if err != nil {
		return 0, fmt.Errorf("error creating class: %w", err)
	}

	class.ID = id
	class.Classcode = classcode
	return id, nil
}

// GetAll retrieves every class
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	query := `
		SELECT id, classname, description, classcode
		FROM classes
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Classname, &class.Desc, &class.Classcode); err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}

	return classes, nil
}
