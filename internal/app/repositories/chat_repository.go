package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunet/edunet/internal/app/models"
)

// ChatRepository handles database operations for chat messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create inserts a new chat message into the database
func (r *ChatRepository) Create(ctx context.Context, chat *models.Chat) (int64, error) {
	query := `
		INSERT INTO chats (private_classroom_id, email, message, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp
	`

	if chat.Timestamp.IsZero() {
		chat.Timestamp = time.Now()
	}

	var id int64
	var timestamp time.Time
	err := r.db.QueryRow(ctx, query,
		chat.PrivateClassroomID,
		chat.Email,
		chat.Message,
		chat.Timestamp,
	).Scan(&id, &timestamp)

	if err != nil {
		return 0, fmt.Errorf("error creating chat message: %w", err)
	}

	chat.ID = id
	chat.Timestamp = timestamp
	return id, nil
}

// GetByClassroomID retrieves all messages for a classroom, oldest first
func (r *ChatRepository) GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Chat, error) {
	query := `
		SELECT id, private_classroom_id, email, message, timestamp
		FROM chats
		WHERE private_classroom_id = $1
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chat messages: %w", err)
	}
	defer rows.Close()

	var chats []*models.Chat
	for rows.Next() {
		var chat models.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.PrivateClassroomID,
			&chat.Email,
			&chat.Message,
			&chat.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat message row: %w", err)
		}
		chats = append(chats, &chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat message rows: %w", err)
	}

	return chats, nil
}
