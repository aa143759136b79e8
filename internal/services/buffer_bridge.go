package services

import (
	"context"
	"encoding/json"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/internal/infrastructure/buffer"
	"github.com/studybuddy/backend/usecase"
)

// BufferBridge adapts the usecase-facing buffer port onto the processor.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferProfile(ctx context.Context, profile *domain.Profile) error {
	if b.processor == nil || profile == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:    profile.ID,
		Entity:    buffer.EntityProfile,
		Operation: buffer.OperationUpdate,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferSessionCreate(ctx context.Context, session *domain.StudySession) error {
	if b.processor == nil || session == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        session.ID,
		UserID:    session.UserID,
		Entity:    buffer.EntityStudySession,
		Operation: buffer.OperationCreate,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferSessionPatch(ctx context.Context, sessionID, userID string, content map[string]any) error {
	if b.processor == nil || sessionID == "" || len(content) == 0 {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(content)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        sessionID,
		UserID:    userID,
		Entity:    buffer.EntityStudySession,
		Operation: buffer.OperationUpdate,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferSessionDelete(ctx context.Context, sessionID, userID string) error {
	if b.processor == nil || sessionID == "" {
		return domain.ErrInvalidPayload
	}
	item := buffer.Item{
		ID:        sessionID,
		UserID:    userID,
		Entity:    buffer.EntityStudySession,
		Operation: buffer.OperationDelete,
		Data:      json.RawMessage(`{}`),
		Priority:  2,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
