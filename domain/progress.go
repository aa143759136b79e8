package domain

import "time"

// UserProgress tracks per-subject/topic mastery accumulated from tutoring
// and quizzes.
type UserProgress struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Subject            string    `json:"subject"`
	Topic              string    `json:"topic"`
	ProgressPercentage int       `json:"progress_percentage"`
	MasteryLevel       string    `json:"mastery_level"`
	TotalStudyMinutes  int       `json:"total_study_time_minutes"`
	QuizScores         []int     `json:"quiz_scores,omitempty"`
	LastStudiedAt      time.Time `json:"last_studied_at"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Achievement is a badge earned by the user.
type Achievement struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	AchievementType string    `json:"achievement_type"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Icon            string    `json:"icon,omitempty"`
	EarnedAt        time.Time `json:"earned_at"`
}

// ExportSnapshot is the user-triggered data export. Slices are always
// non-nil so an empty account still serializes as empty arrays.
type ExportSnapshot struct {
	StudySessions []StudySession `json:"study_sessions"`
	UserProgress  []UserProgress `json:"user_progress"`
	Achievements  []Achievement  `json:"achievements"`
	ExportedAt    time.Time      `json:"exported_at"`
}
