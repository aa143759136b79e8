package studyplan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/planner"
	"github.com/studybuddy/backend/repository"
	"github.com/studybuddy/backend/usecase"
)

const defaultSessionType = "study"

// QuickStats summarizes the user's current planner state for the dashboard.
type QuickStats struct {
	TotalTasks       int `json:"total_tasks"`
	Completed        int `json:"completed"`
	Pending          int `json:"pending"`
	DueToday         int `json:"due_today"`
	HighPriority     int `json:"high_priority"`
	TotalTimeSeconds int `json:"total_time_seconds"`
}

type UseCase struct {
	sessions repository.StudySessionRepository
	exams    repository.ExamRepository
	buffer   usecase.OperationBuffer
	clock    planner.Clock
	logger   *zap.Logger
}

func New(
	sessions repository.StudySessionRepository,
	exams repository.ExamRepository,
	buffer usecase.OperationBuffer,
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
		sessions: sessions,
		exams:    exams,
		buffer:   buffer,
		clock:    clock,
		logger:   logger,
	}
}

// CreateSession validates and stores a new study record. Validation runs
// before any storage call so malformed input never reaches the repository
// or the offline buffer.
func (uc *UseCase) CreateSession(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	if session == nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(session.Topic) == "" {
		return nil, domain.ErrEmptyTopic
	}
	if session.DurationMinutes <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	if session.SessionType == "" {
		session.SessionType = defaultSessionType
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = uc.clock.Now()
	}

	created, err := uc.sessions.Create(ctx, session)
	if err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferSessionCreate(ctx, session); bufErr != nil {
				uc.logger.Error("failed to buffer session create", zap.Error(bufErr))
				return nil, err
			}
			uc.logger.Warn("session create buffered due to repository error", zap.Error(err))
			return session, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) GetSession(ctx context.Context, id, userID string) (*domain.StudySession, error) {
	session, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

func (uc *UseCase) ListSessions(ctx context.Context, filter repository.StudySessionFilter) ([]domain.StudySession, error) {
	return uc.sessions.List(ctx, filter)
}

// UpdateSession merges a content patch into the record. Only the supplied
// keys change; the rest of the blob is preserved by the store. Completion
// is one-way, so a patch cannot move a completed session back to an
// earlier status.
func (uc *UseCase) UpdateSession(ctx context.Context, id, userID string, content map[string]any) error {
	if len(content) == 0 {
		return domain.ErrInvalidPayload
	}
	session, err := uc.GetSession(ctx, id, userID)
	if err != nil {
		return err
	}
	if status, ok := content[domain.ContentStatus].(string); ok &&
		session.IsCompleted() && domain.Status(status) != domain.StatusCompleted {
		return domain.ErrSessionCompleted
	}
	content[domain.ContentUpdatedAt] = uc.clock.Now().Format(time.RFC3339)
	return uc.patch(ctx, id, userID, content)
}

func (uc *UseCase) DeleteSession(ctx context.Context, id, userID string) error {
	if err := uc.sessions.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return err
		}
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferSessionDelete(ctx, id, userID); bufErr == nil {
				uc.logger.Warn("session delete buffered due to repository error", zap.Error(err))
				return nil
			}
		}
		return err
	}
	return nil
}

// MarkCompleted transitions a task to completed. Completion is one-way:
// marking an already-completed task changes nothing.
func (uc *UseCase) MarkCompleted(ctx context.Context, id, userID string) error {
	session, err := uc.GetSession(ctx, id, userID)
	if err != nil {
		return err
	}
	if session.IsCompleted() {
		return nil
	}
	now := uc.clock.Now().Format(time.RFC3339)
	return uc.patch(ctx, id, userID, map[string]any{
		domain.ContentStatus:      string(domain.StatusCompleted),
		domain.ContentCompletedAt: now,
		domain.ContentUpdatedAt:   now,
	})
}

// RecordTime adds elapsed study seconds to the task's accumulated total.
// Time only ever accumulates; a non-positive flush is ignored.
func (uc *UseCase) RecordTime(ctx context.Context, id, userID string, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	session, err := uc.GetSession(ctx, id, userID)
	if err != nil {
		return err
	}
	task := planner.Normalize(*session)
	now := uc.clock.Now().Format(time.RFC3339)
	return uc.patch(ctx, id, userID, map[string]any{
		domain.ContentTimeSpent:  task.TimeSpentSeconds + seconds,
		domain.ContentLastWorked: now,
		domain.ContentUpdatedAt:  now,
	})
}

// Tasks returns the user's normalized task list in planner order.
func (uc *UseCase) Tasks(ctx context.Context, userID string) ([]domain.Task, error) {
	sessions, err := uc.sessions.List(ctx, repository.StudySessionFilter{UserID: userID, Limit: -1})
	if err != nil {
		return nil, err
	}
	return planner.SortTasks(planner.NormalizeAll(sessions)), nil
}

// TodayTasks returns tasks due on the current calendar day.
func (uc *UseCase) TodayTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	tasks, err := uc.Tasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return planner.TasksOn(uc.clock.Now(), tasks), nil
}

func (uc *UseCase) PendingTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.filtered(ctx, userID, func(t domain.Task) bool { return !t.IsCompleted() })
}

func (uc *UseCase) CompletedTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.filtered(ctx, userID, func(t domain.Task) bool { return t.IsCompleted() })
}

// Calendar builds the six-week grid for the month containing reference.
func (uc *UseCase) Calendar(ctx context.Context, userID string, reference, selected time.Time) ([]planner.DayCell, error) {
	tasks, err := uc.Tasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reference.IsZero() {
		reference = uc.clock.Now()
	}
	return planner.MonthGrid(reference, selected, uc.clock.Now(), tasks), nil
}

// Suggestions regenerates the recommendation cards from the current task
// list and upcoming exams. Cards are ephemeral; nothing is stored here.
func (uc *UseCase) Suggestions(ctx context.Context, userID string) ([]domain.Suggestion, error) {
	tasks, err := uc.Tasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()

	var exams []domain.Exam
	if uc.exams != nil {
		exams, err = uc.exams.ListUpcoming(ctx, userID, now, 10)
		if err != nil {
			uc.logger.Warn("failed to load upcoming exams for suggestions", zap.Error(err))
			exams = nil
		}
	}
	return planner.Suggest(tasks, exams, now), nil
}

// AcceptSuggestion promotes a recommendation card into a real study record.
func (uc *UseCase) AcceptSuggestion(ctx context.Context, userID string, suggestion domain.Suggestion) (*domain.StudySession, error) {
	session := &domain.StudySession{
		UserID:          userID,
		Topic:           suggestion.Title,
		DurationMinutes: suggestion.EstimatedMinutes,
		SessionType:     defaultSessionType,
	}
	session.SetContent(domain.ContentStatus, string(domain.StatusPending))
	session.SetContent(domain.ContentPriority, string(suggestion.Priority))
	if suggestion.Subject != "" {
		session.SetContent(domain.ContentSubject, suggestion.Subject)
	}
	if suggestion.Reason != "" {
		session.SetContent(domain.ContentDescription, suggestion.Reason)
	}
	if suggestion.ExamDate != nil {
		session.SetContent(domain.ContentDueDate, suggestion.ExamDate.Format(time.RFC3339))
	}
	return uc.CreateSession(ctx, session)
}

// Stats computes dashboard counters from the full task list.
func (uc *UseCase) Stats(ctx context.Context, userID string) (*QuickStats, error) {
	tasks, err := uc.Tasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := uc.clock.Now()
	stats := &QuickStats{TotalTasks: len(tasks)}
	for _, task := range tasks {
		if task.IsCompleted() {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if task.DueOn(today) {
			stats.DueToday++
		}
		if task.Priority == domain.PriorityHigh && !task.IsCompleted() {
			stats.HighPriority++
		}
		stats.TotalTimeSeconds += task.TimeSpentSeconds
	}
	return stats, nil
}

func (uc *UseCase) filtered(ctx context.Context, userID string, keep func(domain.Task) bool) ([]domain.Task, error) {
	tasks, err := uc.Tasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (uc *UseCase) patch(ctx context.Context, id, userID string, content map[string]any) error {
	if err := uc.sessions.UpdateContent(ctx, id, content); err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferSessionPatch(ctx, id, userID, content); bufErr == nil {
				uc.logger.Warn("session patch buffered due to repository error", zap.Error(err))
				return nil
			}
		}
		return err
	}
	return nil
}
