package usecase

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

// OperationBuffer accepts writes that could not reach primary storage so
// they can be replayed once connectivity returns.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, profile *domain.Profile) error
	BufferSessionCreate(ctx context.Context, session *domain.StudySession) error
	BufferSessionPatch(ctx context.Context, sessionID, userID string, content map[string]any) error
	BufferSessionDelete(ctx context.Context, sessionID, userID string) error
}
