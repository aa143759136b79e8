package domain

import "time"

// SuggestionType is the closed set of recommendation variants.
type SuggestionType string

const (
	SuggestionNew      SuggestionType = "new"
	SuggestionPractice SuggestionType = "practice"
	SuggestionReview   SuggestionType = "review"
	SuggestionExamPrep SuggestionType = "exam_prep"
)

// Suggestion is an ephemeral recommendation card. It is regenerated on every
// evaluation and only becomes durable when the user promotes it into a
// StudySession.
type Suggestion struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Type             SuggestionType `json:"type"`
	Priority         Priority       `json:"priority"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	Reason           string         `json:"reason"`
	Subject          string         `json:"subject,omitempty"`
	ExamDate         *time.Time     `json:"exam_date,omitempty"`
}

// Exam is an upcoming exam feeding the suggestion generator.
type Exam struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date"`
	Weightage int       `json:"weightage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
