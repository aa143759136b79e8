package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type chatHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewChatHistoryRepository(pool *pgxpool.Pool) repository.ChatHistoryRepository {
	return &chatHistoryRepository{pool: pool}
}

func (r *chatHistoryRepository) Append(ctx context.Context, message *domain.ChatMessage) error {
	if message == nil || message.UserID == "" || message.SessionID == "" {
		return domain.ErrInvalidPayload
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO chat_history (id, user_id, session_id, message_type, content, metadata)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`

	var metadata []byte
	if len(message.Metadata) > 0 {
		metadata, _ = json.Marshal(message.Metadata)
	}

	return r.pool.QueryRow(ctx, query,
		message.ID,
		message.UserID,
		message.SessionID,
		string(message.Role),
		message.Content,
		metadata,
	).Scan(&message.CreatedAt)
}

func (r *chatHistoryRepository) History(ctx context.Context, userID, sessionID string, limit int) ([]domain.ChatMessage, error) {
	const query = `
	SELECT id, user_id, session_id, message_type, content, metadata, created_at
	FROM chat_history
	WHERE user_id = $1 AND session_id = $2
	ORDER BY created_at ASC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, sessionID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		var role string
		var metadata []byte
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.SessionID, &role, &msg.Content, &metadata, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Role = domain.ChatRole(role)
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &msg.Metadata)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
