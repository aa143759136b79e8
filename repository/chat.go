package repository

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

// ChatHistoryRepository persists tutor conversation messages. History
// returns messages for one chat session in chronological order.
type ChatHistoryRepository interface {
	Append(ctx context.Context, message *domain.ChatMessage) error
	History(ctx context.Context, userID, sessionID string, limit int) ([]domain.ChatMessage, error)
}
