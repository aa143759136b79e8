package domain

import "time"

// StudySession is the persisted study record. Structured columns carry the
// fields the store enforces; everything else lives in the free-form Content
// blob and is only given a shape by planner.Normalize.
type StudySession struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Topic           string         `json:"topic"`
	DurationMinutes int            `json:"duration_minutes"`
	SessionType     string         `json:"session_type"`
	Content         map[string]any `json:"content,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Content blob keys. The store does not enforce any of these.
const (
	ContentTitle       = "title"
	ContentDescription = "description"
	ContentStatus      = "status"
	ContentPriority    = "priority"
	ContentDueDate     = "due_date"
	ContentSubject     = "subject"
	ContentNotes       = "notes"
	ContentTimeSpent   = "time_spent"
	ContentLastWorked  = "last_worked"
	ContentCompletedAt = "completed_at"
	ContentUpdatedAt   = "updated_at"
)

// SetContent assigns a content key, allocating the blob when needed.
func (s *StudySession) SetContent(key string, value any) {
	if s == nil {
		return
	}
	if s.Content == nil {
		s.Content = make(map[string]any)
	}
	s.Content[key] = value
}

func (s *StudySession) IsCompleted() bool {
	if s == nil || s.Content == nil {
		return false
	}
	status, _ := s.Content[ContentStatus].(string)
	return status == string(StatusCompleted)
}
