package domain

import "time"

// ChatRole distinguishes who produced a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one persisted tutor conversation entry.
type ChatMessage struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	SessionID string            `json:"session_id"`
	Role      ChatRole          `json:"role"`
	Content   string            `json:"content"`
	HasCode   bool              `json:"has_code,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
