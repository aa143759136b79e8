package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type fakeSessionRepo struct {
	sessions  []domain.StudySession
	lastLimit int
}

func (r *fakeSessionRepo) GetByID(context.Context, string) (*domain.StudySession, error) {
	return nil, domain.ErrSessionNotFound
}

func (r *fakeSessionRepo) List(_ context.Context, filter repository.StudySessionFilter) ([]domain.StudySession, error) {
	r.lastLimit = filter.Limit
	return r.sessions, nil
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.StudySession) (*domain.StudySession, error) {
	return s, nil
}

func (r *fakeSessionRepo) UpdateContent(context.Context, string, map[string]any) error { return nil }

func (r *fakeSessionRepo) Delete(context.Context, string, string) error { return nil }

type fakeProgressRepo struct{ progress []domain.UserProgress }

func (r *fakeProgressRepo) ListByUser(context.Context, string) ([]domain.UserProgress, error) {
	return r.progress, nil
}

func (r *fakeProgressRepo) Apply(context.Context, repository.ProgressUpdate) error { return nil }

type fakeAchievementRepo struct{ achievements []domain.Achievement }

func (r *fakeAchievementRepo) ListByUser(context.Context, string) ([]domain.Achievement, error) {
	return r.achievements, nil
}

func (r *fakeAchievementRepo) Grant(context.Context, *domain.Achievement) error { return nil }

func (r *fakeAchievementRepo) HasType(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestSnapshotEmptyAccountSerializesAsArrays(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	uc := New(&fakeSessionRepo{}, &fakeProgressRepo{}, &fakeAchievementRepo{}, fakeClock{now: now}, nil)

	snapshot, err := uc.Snapshot(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snapshot.StudySessions == nil || snapshot.UserProgress == nil || snapshot.Achievements == nil {
		t.Fatal("empty collections must be non-nil")
	}
	if !snapshot.ExportedAt.Equal(now) {
		t.Errorf("exported_at = %v", snapshot.ExportedAt)
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"study_sessions":[]`, `"user_progress":[]`, `"achievements":[]`} {
		if !strings.Contains(string(raw), field) {
			t.Errorf("export JSON missing %s: %s", field, raw)
		}
	}
}

func TestSnapshotIsUnpaged(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: []domain.StudySession{{ID: "s1", UserID: "u1"}}}
	uc := New(sessions, &fakeProgressRepo{}, &fakeAchievementRepo{}, nil, nil)

	snapshot, err := uc.Snapshot(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snapshot.StudySessions) != 1 {
		t.Fatalf("sessions = %d", len(snapshot.StudySessions))
	}
	if sessions.lastLimit >= 0 {
		t.Errorf("export used a paged listing (limit %d)", sessions.lastLimit)
	}
}
