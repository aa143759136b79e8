package repository

import (
	"context"

	"github.com/studybuddy/backend/domain"
)

// ProgressUpdate is one increment applied to a user's subject/topic
// progress. StudyMinutes accumulates, ProgressDelta is capped at 100 total,
// and a non-nil QuizScore is appended to the score history.
type ProgressUpdate struct {
	UserID        string
	Subject       string
	Topic         string
	ProgressDelta int
	StudyMinutes  int
	QuizScore     *int
}

type UserProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.UserProgress, error)
	Apply(ctx context.Context, update ProgressUpdate) error
}

type AchievementRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Achievement, error)
	Grant(ctx context.Context, achievement *domain.Achievement) error
	HasType(ctx context.Context, userID, achievementType string) (bool, error)
}
