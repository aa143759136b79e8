package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type studySessionRepository struct {
	pool *pgxpool.Pool
}

// NewStudySessionRepository returns a Postgres-backed implementation of
// StudySessionRepository.
func NewStudySessionRepository(pool *pgxpool.Pool) repository.StudySessionRepository {
	return &studySessionRepository{pool: pool}
}

func (r *studySessionRepository) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	const query = `
	SELECT id, user_id, topic, duration_minutes, session_type, content, created_at
	FROM study_sessions
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanSession(row)
}

func (r *studySessionRepository) List(ctx context.Context, filter repository.StudySessionFilter) ([]domain.StudySession, error) {
	const query = `
	SELECT id, user_id, topic, duration_minutes, session_type, content, created_at
	FROM study_sessions
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR session_type = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.SessionType, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.StudySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func (r *studySessionRepository) Create(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	if session == nil {
		return nil, domain.ErrInvalidPayload
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO study_sessions (id, user_id, topic, duration_minutes, session_type, content)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.Topic,
		session.DurationMinutes,
		session.SessionType,
		marshalBlob(session.Content),
	).Scan(&session.CreatedAt); err != nil {
		return nil, err
	}

	return session, nil
}

// UpdateContent merges the provided keys into the existing content blob.
// Keys absent from the patch are left untouched.
func (r *studySessionRepository) UpdateContent(ctx context.Context, id string, content map[string]any) error {
	if len(content) == 0 {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE study_sessions
	SET content = COALESCE(content, '{}'::jsonb) || $2::jsonb
	WHERE id = $1
	`

	patch, err := json.Marshal(content)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, query, id, patch)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *studySessionRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM study_sessions WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func scanSession(row interface {
	Scan(dest ...interface{}) error
}) (*domain.StudySession, error) {
	var session domain.StudySession
	var content []byte

	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Topic,
		&session.DurationMinutes,
		&session.SessionType,
		&content,
		&session.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if len(content) > 0 {
		_ = json.Unmarshal(content, &session.Content)
	}

	return &session, nil
}
