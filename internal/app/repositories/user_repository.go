package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (fullname, email, dob, password, is_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		user.Fullname,
		user.Email,
		user.DOB,
		user.Password,
		user.IsVerified,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	return id, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, fullname, email, dob, password, is_verified
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.DOB,
		&user.Password,
		&user.IsVerified,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, fullname, email, dob, password, is_verified
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.DOB,
		&user.Password,
		&user.IsVerified,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// SetVerified marks the user with the given email as verified
func (r *UserRepository) SetVerified(ctx context.Context, email string) error {
	query := `UPDATE users SET is_verified = TRUE WHERE email = $1`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("error verifying user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UserDetailUpdates carries the optional fields of a partial user update
type UserDetailUpdates struct {
	Fullname *string
	DOB      *string
	Password *string
}

// UpdateDetails applies a partial update to the user with the given
// email and returns the updated row
func (r *UserRepository) UpdateDetails(ctx context.Context, email string, updates UserDetailUpdates) (*models.User, error) {
	queryBuilder := squirrel.Update("users").
		Where("email = ?", email).
		Suffix("RETURNING id, fullname, email, dob, password, is_verified").
		PlaceholderFormat(squirrel.Dollar)

	if updates.Fullname != nil {
		queryBuilder = queryBuilder.Set("fullname", *updates.Fullname)
	}
	if updates.DOB != nil {
		queryBuilder = queryBuilder.Set("dob", *updates.DOB)
	}
	if updates.Password != nil {
		queryBuilder = queryBuilder.Set("password", *updates.Password)
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.DOB,
		&user.Password,
		&user.IsVerified,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user details: %w", err)
	}

	return &user, nil
}

// GetNamesByIDs returns a map of user ID to full name for the given IDs
func (r *UserRepository) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `SELECT id, fullname FROM users WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var fullname string
		if err := rows.Scan(&id, &fullname); err != nil {
			return nil, fmt.Errorf("error scanning user name row: %w", err)
		}
		names[id] = fullname
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user name rows: %w", err)
	}

	return names, nil
}
