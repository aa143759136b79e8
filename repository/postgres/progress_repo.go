package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type userProgressRepository struct {
	pool *pgxpool.Pool
}

func NewUserProgressRepository(pool *pgxpool.Pool) repository.UserProgressRepository {
	return &userProgressRepository{pool: pool}
}

func (r *userProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.UserProgress, error) {
	const query = `
	SELECT id, user_id, subject, topic, progress_percentage, mastery_level,
		total_study_time_minutes, quiz_scores, last_studied_at, created_at, updated_at
	FROM user_progress
	WHERE user_id = $1
	ORDER BY updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.UserProgress
	for rows.Next() {
		var p domain.UserProgress
		var scores []byte
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Subject, &p.Topic, &p.ProgressPercentage,
			&p.MasteryLevel, &p.TotalStudyMinutes, &scores,
			&p.LastStudiedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(scores) > 0 {
			_ = json.Unmarshal(scores, &p.QuizScores)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// Apply upserts one progress increment: the percentage accumulates up to
// 100, study minutes add up, and a quiz score (when present) is appended to
// the score history.
func (r *userProgressRepository) Apply(ctx context.Context, update repository.ProgressUpdate) error {
	if update.UserID == "" || update.Subject == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO user_progress (id, user_id, subject, topic, progress_percentage,
		total_study_time_minutes, quiz_scores, last_studied_at)
	VALUES ($1, $2, $3, $4, LEAST($5, 100), $6, $7, NOW())
	ON CONFLICT (user_id, subject, topic) DO UPDATE
	SET progress_percentage = LEAST(user_progress.progress_percentage + $5, 100),
		total_study_time_minutes = user_progress.total_study_time_minutes + $6,
		quiz_scores = COALESCE(user_progress.quiz_scores, '[]'::jsonb) || $7::jsonb,
		last_studied_at = NOW(),
		updated_at = NOW()
	`

	scores := []int{}
	if update.QuizScore != nil {
		scores = append(scores, *update.QuizScore)
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		uuid.NewString(),
		update.UserID,
		update.Subject,
		update.Topic,
		update.ProgressDelta,
		update.StudyMinutes,
		scoresJSON,
	)
	return err
}

type achievementRepository struct {
	pool *pgxpool.Pool
}

func NewAchievementRepository(pool *pgxpool.Pool) repository.AchievementRepository {
	return &achievementRepository{pool: pool}
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Achievement, error) {
	const query = `
	SELECT id, user_id, achievement_type, title, description, COALESCE(icon, ''), earned_at
	FROM achievements
	WHERE user_id = $1
	ORDER BY earned_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.AchievementType, &a.Title, &a.Description, &a.Icon, &a.EarnedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (r *achievementRepository) Grant(ctx context.Context, achievement *domain.Achievement) error {
	if achievement == nil || achievement.UserID == "" {
		return domain.ErrInvalidPayload
	}
	if achievement.ID == "" {
		achievement.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO achievements (id, user_id, achievement_type, title, description, icon)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	RETURNING earned_at
	`
	return r.pool.QueryRow(ctx, query,
		achievement.ID,
		achievement.UserID,
		achievement.AchievementType,
		achievement.Title,
		achievement.Description,
		achievement.Icon,
	).Scan(&achievement.EarnedAt)
}

func (r *achievementRepository) HasType(ctx context.Context, userID, achievementType string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM achievements WHERE user_id = $1 AND achievement_type = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, achievementType).Scan(&exists)
	return exists, err
}
