package repository

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

// StudySessionFilter scopes a listing. A zero Limit falls back to the
// default page size; a negative Limit returns everything.
type StudySessionFilter struct {
	UserID      string
	SessionType string
	Limit       int
	Offset      int
}

// StudySessionRepository persists study records. List returns rows ordered
// by creation time descending and scoped to the filter's user.
type StudySessionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	List(ctx context.Context, filter StudySessionFilter) ([]domain.StudySession, error)
	Create(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)
	UpdateContent(ctx context.Context, id string, content map[string]any) error
	Delete(ctx context.Context, id, userID string) error
}
