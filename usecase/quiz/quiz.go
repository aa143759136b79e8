package quiz

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/internal/infrastructure/mistral"
	"github.com/studybuddy/backend/planner"
	"github.com/studybuddy/backend/repository"
)

const (
	defaultQuestionCount = 5
	maxQuestionCount     = 20

	quizSessionType  = "quiz"
	quizTopicSuffix  = "Quiz (AI Generated)"
	perfectScoreType = "quiz_perfect"
)

// Generation failure descriptions escalate with consecutive failures and
// reset once a quiz generates successfully.
var generationFailures = []string{
	"Failed to generate quiz questions. This might be due to high demand on the AI service. Please try again.",
	"Failed to generate quiz questions. The AI service is experiencing issues. Please wait a moment and try again.",
	"Failed to generate quiz questions. The AI service seems to be having extended issues. This could be due to API limits or service outage. Please try again later.",
}

type UseCase struct {
	ai           mistral.Client
	sessions     repository.StudySessionRepository
	progress     repository.UserProgressRepository
	achievements repository.AchievementRepository
	clock        planner.Clock
	logger       *zap.Logger

	mu       sync.Mutex
	failures map[string]int
}

func New(
	ai mistral.Client,
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
		ai:           ai,
		sessions:     sessions,
		progress:     progress,
		achievements: achievements,
		clock:        clock,
		logger:       logger,
		failures:     make(map[string]int),
	}
}

// Generate asks the assistant for a multiple-choice quiz and coerces the
// reply into validated questions. Failures escalate an advisory message
// per user until a generation succeeds.
func (uc *UseCase) Generate(ctx context.Context, userID, category, difficulty string, count int) ([]domain.QuizQuestion, error) {
	if strings.TrimSpace(category) == "" {
		return nil, domain.ErrEmptyTopic
	}
	if count <= 0 {
		count = defaultQuestionCount
	}
	if count > maxQuestionCount {
		count = maxQuestionCount
	}
	if difficulty == "" {
		difficulty = "medium"
	}

	reply, err := uc.ai.Complete(ctx, "", buildPrompt(count, category, difficulty))
	if err != nil {
		return nil, uc.generationFailure(userID, err)
	}
	if strings.Contains(reply, "technical difficulties") || strings.Contains(reply, "service issues") {
		return nil, uc.generationFailure(userID, domain.ErrAssistantUnavailable)
	}

	questions, err := ParseQuestions(reply)
	if err != nil {
		return nil, uc.generationFailure(userID, err)
	}

	uc.mu.Lock()
	delete(uc.failures, userID)
	uc.mu.Unlock()
	return questions, nil
}

// Complete grades an answered quiz, records it as a study session and
// credits the result toward the student's progress. A perfect score earns
// an achievement once.
func (uc *UseCase) Complete(ctx context.Context, userID, category, difficulty string, questions []domain.QuizQuestion, answers []int, totalSeconds int, questionTimes []int) (*domain.QuizResult, error) {
	if len(questions) == 0 || len(answers) != len(questions) {
		return nil, domain.ErrInvalidPayload
	}

	score := 0
	for i, answer := range answers {
		if answer == questions[i].CorrectAnswer {
			score++
		}
	}
	percentage := (score*100 + len(questions)/2) / len(questions)
	minutes := (totalSeconds + 59) / 60
	if minutes < 1 {
		minutes = 1
	}

	result := &domain.QuizResult{
		Category:     category,
		Difficulty:   difficulty,
		Score:        score,
		Total:        len(questions),
		Percentage:   percentage,
		TotalSeconds: totalSeconds,
	}

	session := &domain.StudySession{
		ID:              uuid.NewString(),
		UserID:          userID,
		Topic:           fmt.Sprintf("%s %s", category, quizTopicSuffix),
		DurationMinutes: minutes,
		SessionType:     quizSessionType,
		Content: map[string]any{
			"category":                  category,
			"difficulty":                difficulty,
			"score":                     percentage,
			"questions":                 len(questions),
			"correct_answers":           score,
			"total_time_seconds":        totalSeconds,
			"question_times":            questionTimes,
			"average_time_per_question": (totalSeconds + len(questions)/2) / len(questions),
			"ai_generated":              true,
		},
		CreatedAt: uc.clock.Now(),
	}
	if _, err := uc.sessions.Create(ctx, session); err != nil {
		uc.logger.Error("failed to record quiz session", zap.Error(err))
	}

	if uc.progress != nil {
		quizScore := percentage
		err := uc.progress.Apply(ctx, repository.ProgressUpdate{
			UserID:        userID,
			Subject:       category,
			Topic:         "AI Quiz Practice",
			ProgressDelta: percentage,
			StudyMinutes:  minutes,
			QuizScore:     &quizScore,
		})
		if err != nil {
			uc.logger.Warn("failed to update progress after quiz", zap.Error(err))
		}
	}

	if percentage == 100 {
		uc.grantPerfectScore(ctx, userID, category)
	}
	return result, nil
}

func (uc *UseCase) grantPerfectScore(ctx context.Context, userID, category string) {
	if uc.achievements == nil {
		return
	}
	if has, err := uc.achievements.HasType(ctx, userID, perfectScoreType); err != nil || has {
		return
	}
	err := uc.achievements.Grant(ctx, &domain.Achievement{
		ID:              uuid.NewString(),
		UserID:          userID,
		AchievementType: perfectScoreType,
		Title:           "Perfect Score!",
		Description:     fmt.Sprintf("Got 100%% on AI-generated %s quiz", category),
		Icon:            "🏆",
		EarnedAt:        uc.clock.Now(),
	})
	if err != nil {
		uc.logger.Warn("failed to grant achievement", zap.Error(err))
	}
}

func (uc *UseCase) generationFailure(userID string, cause error) error {
	uc.mu.Lock()
	count := uc.failures[userID]
	uc.failures[userID] = count + 1
	uc.mu.Unlock()

	if count >= len(generationFailures) {
		count = len(generationFailures) - 1
	}
	return domain.WrapError(domain.ErrCodeUnavailable, generationFailures[count], cause)
}

func buildPrompt(count int, category, difficulty string) string {
	return fmt.Sprintf(`Generate %d multiple choice questions about %s at %s difficulty level.

Format the response as a JSON array with each question having this exact structure:
{
  "question": "Question text here",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correctAnswer": 0,
  "explanation": "Brief explanation of why this is correct"
}

Make sure:
- Each question has exactly 4 options
- correctAnswer is the index (0-3) of the correct option
- Questions are relevant to %s
- Difficulty matches %s level
- Include clear explanations

Return only the JSON array, no additional text.`, count, category, difficulty, category, difficulty)
}
