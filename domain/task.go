package domain

import "time"

// Status is the closed set of task states exposed by the planner.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the sort weight for a priority (high > medium > low).
// Unknown values rank lowest, matching the default the normalizer applies.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 1
	}
}

// Task is the fully-defaulted view model derived from a StudySession.
// Every field is populated; DueDate is nil when the record carries no
// parseable due date so day-bucketed views can skip the task cleanly.
type Task struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Subject          string     `json:"subject,omitempty"`
	DurationMinutes  int        `json:"duration_minutes"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// DueOn reports whether the task is due on the given calendar day.
// Tasks without a due date are due on no day at all.
func (t *Task) DueOn(day time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
