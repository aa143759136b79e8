package repository

import (
	"context"
	"time"

	"github.com/studybuddy/backend/domain"
)

// ExamRepository stores upcoming exams. ListUpcoming returns exams on or
// after the reference time, soonest first.
type ExamRepository interface {
	ListUpcoming(ctx context.Context, userID string, after time.Time, limit int) ([]domain.Exam, error)
	Create(ctx context.Context, exam *domain.Exam) (*domain.Exam, error)
	Delete(ctx context.Context, id, userID string) error
}
