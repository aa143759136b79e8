package transport

import "github.com/studybuddy/backend/domain"

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type ProfileUpdateRequest struct {
	FullName   string `json:"full_name"`
	University string `json:"university"`
	Major      string `json:"major"`
	Year       string `json:"year"`
	Bio        string `json:"bio"`
	AvatarURL  string `json:"avatar_url"`
}

type SessionCreateRequest struct {
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"duration_minutes"`
	SessionType     string `json:"session_type"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`
	DueDate         string `json:"due_date"`
	Subject         string `json:"subject"`
	Notes           string `json:"notes"`
}

// SessionUpdateRequest is a partial patch; only fields present in the JSON
// body are applied to the record's content.
type SessionUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Subject     *string `json:"subject"`
	Notes       *string `json:"notes"`
}

type SuggestionAcceptRequest struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Type             string `json:"type"`
	Priority         string `json:"priority"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Reason           string `json:"reason"`
	Subject          string `json:"subject"`
	ExamDate         string `json:"exam_date"`
}

type TimerStartRequest struct {
	TaskID           string `json:"task_id"`
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type QuizGenerateRequest struct {
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
}

type QuizCompleteRequest struct {
	Category      string                `json:"category"`
	Difficulty    string                `json:"difficulty"`
	Questions     []domain.QuizQuestion `json:"questions"`
	Answers       []int                 `json:"answers"`
	TotalSeconds  int                   `json:"total_seconds"`
	QuestionTimes []int                 `json:"question_times"`
}

type ExamCreateRequest struct {
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	Weightage int    `json:"weightage"`
}
