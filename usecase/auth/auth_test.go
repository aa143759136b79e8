package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studybuddy/backend/domain"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fakeProfileRepo struct{ profiles map[string]*domain.Profile }

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *domain.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

type fakeAuthSessionRepo struct {
	sessions map[string]*domain.AuthSession
	deleted  []string
}

func newFakeAuthSessionRepo() *fakeAuthSessionRepo {
	return &fakeAuthSessionRepo{sessions: make(map[string]*domain.AuthSession)}
}

func (r *fakeAuthSessionRepo) Get(_ context.Context, id string) (*domain.AuthSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrAuthSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeAuthSessionRepo) Save(_ context.Context, session *domain.AuthSession) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeAuthSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeAuthSessionRepo) Extend(_ context.Context, _ string, _ int) error { return nil }

func newAuth(clock *fakeClock) (*UseCase, *fakeAuthSessionRepo) {
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
		"u1": {ID: "u1", FullName: "Test Student"},
	}}
	sessions := newFakeAuthSessionRepo()
	return New(profiles, sessions, clock, nil), sessions
}

func TestCreateSessionStampsFromClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc, _ := newAuth(&fakeClock{now: now})

	session, err := uc.CreateSession(context.Background(), "u1", time.Hour)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if !session.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", session.CreatedAt, now)
	}
	if !session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expires_at = %v, want %v", session.ExpiresAt, now.Add(time.Hour))
	}
}

func TestCreateSessionUnknownUser(t *testing.T) {
	uc, _ := newAuth(&fakeClock{now: time.Now()})

	if _, err := uc.CreateSession(context.Background(), "ghost", time.Hour); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("got %v, want ErrProfileNotFound", err)
	}
}

func TestGetSessionExpiryUsesClock(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc, sessions := newAuth(clock)

	created, err := uc.CreateSession(context.Background(), "u1", time.Hour)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	// Still valid just before the expiry boundary.
	clock.now = clock.now.Add(59 * time.Minute)
	if _, err := uc.GetSession(context.Background(), created.ID); err != nil {
		t.Fatalf("GetSession before expiry: %v", err)
	}

	// Past the boundary the session reads as gone and is evicted.
	clock.now = clock.now.Add(2 * time.Minute)
	if _, err := uc.GetSession(context.Background(), created.ID); !errors.Is(err, domain.ErrAuthSessionNotFound) {
		t.Fatalf("got %v, want ErrAuthSessionNotFound", err)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != created.ID {
		t.Errorf("expired session not evicted: deleted = %v", sessions.deleted)
	}
}

func TestRefreshSessionExtendsFromClock(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc, _ := newAuth(clock)

	created, err := uc.CreateSession(context.Background(), "u1", time.Hour)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	clock.now = clock.now.Add(30 * time.Minute)
	refreshed, err := uc.RefreshSession(context.Background(), created.ID, time.Hour)
	if err != nil {
		t.Fatalf("RefreshSession: %v", err)
	}
	if !refreshed.ExpiresAt.Equal(clock.now.Add(time.Hour)) {
		t.Errorf("expires_at = %v, want %v", refreshed.ExpiresAt, clock.now.Add(time.Hour))
	}
}
