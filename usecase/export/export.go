package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/planner"
	"github.com/studybuddy/backend/repository"
)

// UseCase assembles the user-triggered account data export.
type UseCase struct {
	sessions     repository.StudySessionRepository
	progress     repository.UserProgressRepository
	achievements repository.AchievementRepository
	clock        planner.Clock
	logger       *zap.Logger
}

func New(
	sessions repository.StudySessionRepository,
	progress repository.UserProgressRepository,
	achievements repository.AchievementRepository,
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
		sessions:     sessions,
		progress:     progress,
		achievements: achievements,
		clock:        clock,
		logger:       logger,
	}
}

// Snapshot gathers everything the user owns. Collections are always
// non-nil so an empty account still exports as empty arrays.
func (uc *UseCase) Snapshot(ctx context.Context, userID string) (*domain.ExportSnapshot, error) {
	sessions, err := uc.sessions.List(ctx, repository.StudySessionFilter{UserID: userID, Limit: -1})
	if err != nil {
		return nil, err
	}
	progress, err := uc.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements, err := uc.achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.ExportSnapshot{
		StudySessions: sessions,
		UserProgress:  progress,
		Achievements:  achievements,
		ExportedAt:    uc.clock.Now(),
	}
	if snapshot.StudySessions == nil {
		snapshot.StudySessions = []domain.StudySession{}
	}
	if snapshot.UserProgress == nil {
		snapshot.UserProgress = []domain.UserProgress{}
	}
	if snapshot.Achievements == nil {
		snapshot.Achievements = []domain.Achievement{}
	}
	return snapshot, nil
}
