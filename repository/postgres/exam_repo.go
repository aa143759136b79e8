package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type examRepository struct {
	pool *pgxpool.Pool
}

func NewExamRepository(pool *pgxpool.Pool) repository.ExamRepository {
	return &examRepository{pool: pool}
}

func (r *examRepository) ListUpcoming(ctx context.Context, userID string, after time.Time, limit int) ([]domain.Exam, error) {
	const query = `
	SELECT id, user_id, title, subject, exam_date, weightage, created_at
	FROM exams
	WHERE user_id = $1 AND exam_date >= $2
	ORDER BY exam_date ASC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, after, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []domain.Exam
	for rows.Next() {
		var exam domain.Exam
		if err := rows.Scan(&exam.ID, &exam.UserID, &exam.Title, &exam.Subject, &exam.Date, &exam.Weightage, &exam.CreatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}

func (r *examRepository) Create(ctx context.Context, exam *domain.Exam) (*domain.Exam, error) {
	if exam == nil || exam.Title == "" || exam.Date.IsZero() {
		return nil, domain.ErrInvalidPayload
	}
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO exams (id, user_id, title, subject, exam_date, weightage)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		exam.ID,
		exam.UserID,
		exam.Title,
		exam.Subject,
		exam.Date,
		exam.Weightage,
	).Scan(&exam.CreatedAt); err != nil {
		return nil, err
	}
	return exam, nil
}

func (r *examRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM exams WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExamNotFound
	}
	return nil
}
