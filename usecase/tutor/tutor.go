package tutor

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/internal/infrastructure/mistral"
	"github.com/studybuddy/backend/planner"
	"github.com/studybuddy/backend/repository"
)

const (
	progressSubject    = "Computer Science"
	progressTopicLimit = 50
	progressPerMessage = 10
	minutesPerMessage  = 2

	systemPrompt = "You are an AI tutor helping university students master " +
		"Computer Science. Explain concepts clearly, use examples, and wrap " +
		"any code in fenced code blocks. Keep answers focused on the question."
)

// Fallback replies escalate with consecutive failures and reset on the
// first successful response.
var failureReplies = []string{
	"I encountered a temporary issue. This might be due to high demand on the AI service. Please try again in a moment.",
	"Still having trouble connecting to the AI service. This could be due to API rate limits. Please wait a few seconds and try again.",
	"The AI service seems to be experiencing extended issues. This might be due to:\n\n• API rate limits or quota exceeded\n• Temporary service outage\n• Network connectivity issues\n\nPlease try again later, or check if your Mistral AI API key has sufficient credits.",
}

type UseCase struct {
	ai       mistral.Client
	chat     repository.ChatHistoryRepository
	progress repository.UserProgressRepository
	clock    planner.Clock
	logger   *zap.Logger

	mu       sync.Mutex
	failures map[string]int
}

func New(
	ai mistral.Client,
	chat repository.ChatHistoryRepository,
	progress repository.UserProgressRepository,
	clock planner.Clock,
	logger *zap.Logger,
) *UseCase {
	if clock == nil {
		clock = planner.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		ai:       ai,
		chat:     chat,
		progress: progress,
		clock:    clock,
		logger:   logger,
		failures: make(map[string]int),
	}
}

// Send relays a student question to the assistant. The user message is
// always persisted; the assistant reply is persisted only when the model
// actually answered. When the model is unreachable the returned message is
// an unpersisted fallback whose wording escalates with consecutive
// failures.
func (uc *UseCase) Send(ctx context.Context, userID, sessionID, message string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrInvalidPayload
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := uc.clock.Now()
	userMsg := &domain.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      domain.ChatRoleUser,
		Content:   message,
		CreatedAt: now,
	}
	if err := uc.chat.Append(ctx, userMsg); err != nil {
		return nil, err
	}

	reply, err := uc.ai.Complete(ctx, systemPrompt, message)
	if err != nil {
		uc.logger.Warn("assistant call failed", zap.Error(err))
		return uc.fallbackMessage(userID, sessionID), nil
	}
	uc.resetFailures(userID)

	assistantMsg := &domain.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      domain.ChatRoleAssistant,
		Content:   reply,
		HasCode:   strings.Contains(reply, "```"),
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.chat.Append(ctx, assistantMsg); err != nil {
		uc.logger.Error("failed to persist assistant reply", zap.Error(err))
	}

	uc.bumpProgress(ctx, userID, message)
	return assistantMsg, nil
}

// History returns the chronological conversation for one chat session.
func (uc *UseCase) History(ctx context.Context, userID, sessionID string, limit int) ([]domain.ChatMessage, error) {
	return uc.chat.History(ctx, userID, sessionID, limit)
}

// bumpProgress credits a successful exchange toward the student's mastery
// record. Best effort: a progress failure never fails the chat.
func (uc *UseCase) bumpProgress(ctx context.Context, userID, message string) {
	if uc.progress == nil {
		return
	}
	topic := message
	if runes := []rune(topic); len(runes) > progressTopicLimit {
		topic = string(runes[:progressTopicLimit])
	}
	err := uc.progress.Apply(ctx, repository.ProgressUpdate{
		UserID:        userID,
		Subject:       progressSubject,
		Topic:         topic,
		ProgressDelta: progressPerMessage,
		StudyMinutes:  minutesPerMessage,
	})
	if err != nil {
		uc.logger.Warn("failed to update progress after chat", zap.Error(err))
	}
}

func (uc *UseCase) fallbackMessage(userID, sessionID string) *domain.ChatMessage {
	uc.mu.Lock()
	count := uc.failures[userID]
	uc.failures[userID] = count + 1
	uc.mu.Unlock()

	if count >= len(failureReplies) {
		count = len(failureReplies) - 1
	}
	return &domain.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      domain.ChatRoleAssistant,
		Content:   failureReplies[count],
		CreatedAt: uc.clock.Now(),
	}
}

func (uc *UseCase) resetFailures(userID string) {
	uc.mu.Lock()
	delete(uc.failures, userID)
	uc.mu.Unlock()
}
