package planner

import (
	"time"

	"github.com/studybuddy/backend/domain"
)

// Normalize maps a persisted study record into a fully-defaulted Task view
// model. The content blob is not schema-enforced by the store, so every
// lookup tolerates a missing or mistyped field and falls back to a default;
// Normalize never fails. A missing or unparsable due date yields a nil
// DueDate rather than a sentinel, which keeps day-bucketed views from
// picking the task up.
func Normalize(s domain.StudySession) domain.Task {
	task := domain.Task{
		ID:              s.ID,
		UserID:          s.UserID,
		Title:           s.Topic,
		Status:          domain.StatusPending,
		Priority:        domain.PriorityMedium,
		Subject:         s.SessionType,
		DurationMinutes: s.DurationMinutes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.CreatedAt,
	}

	if title := blobString(s.Content, domain.ContentTitle); title != "" {
		task.Title = title
	}
	task.Description = blobString(s.Content, domain.ContentDescription)
	task.Notes = blobString(s.Content, domain.ContentNotes)

	if subject := blobString(s.Content, domain.ContentSubject); subject != "" {
		task.Subject = subject
	}

	switch domain.Status(blobString(s.Content, domain.ContentStatus)) {
	case domain.StatusInProgress:
		task.Status = domain.StatusInProgress
	case domain.StatusCompleted:
		task.Status = domain.StatusCompleted
	}

	switch domain.Priority(blobString(s.Content, domain.ContentPriority)) {
	case domain.PriorityLow:
		task.Priority = domain.PriorityLow
	case domain.PriorityHigh:
		task.Priority = domain.PriorityHigh
	}

	task.DueDate = blobTime(s.Content, domain.ContentDueDate)
	task.TimeSpentSeconds = blobInt(s.Content, domain.ContentTimeSpent)
	if task.TimeSpentSeconds < 0 {
		task.TimeSpentSeconds = 0
	}

	if updated := blobTime(s.Content, domain.ContentUpdatedAt); updated != nil {
		task.UpdatedAt = *updated
	}

	return task
}

// NormalizeAll maps a full record collection, preserving order.
func NormalizeAll(sessions []domain.StudySession) []domain.Task {
	tasks := make([]domain.Task, 0, len(sessions))
	for _, s := range sessions {
		tasks = append(tasks, Normalize(s))
	}
	return tasks
}

func blobString(content map[string]any, key string) string {
	if content == nil {
		return ""
	}
	v, _ := content[key].(string)
	return v
}

// blobInt accepts the numeric shapes JSON decoding can produce.
func blobInt(content map[string]any, key string) int {
	if content == nil {
		return 0
	}
	switch v := content[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func blobTime(content map[string]any, key string) *time.Time {
	raw := blobString(content, key)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	return nil
}
