package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/repository"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type fakeAI struct {
	reply   string
	err     error
	prompts []string
}

func (a *fakeAI) Complete(_ context.Context, _, user string) (string, error) {
	a.prompts = append(a.prompts, user)
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

type fakeSessionRepo struct {
	created []domain.StudySession
}

func (r *fakeSessionRepo) GetByID(context.Context, string) (*domain.StudySession, error) {
	return nil, domain.ErrSessionNotFound
}

func (r *fakeSessionRepo) List(context.Context, repository.StudySessionFilter) ([]domain.StudySession, error) {
	return nil, nil
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.StudySession) (*domain.StudySession, error) {
	r.created = append(r.created, *s)
	return s, nil
}

func (r *fakeSessionRepo) UpdateContent(context.Context, string, map[string]any) error { return nil }

func (r *fakeSessionRepo) Delete(context.Context, string, string) error { return nil }

type fakeProgressRepo struct {
	updates []repository.ProgressUpdate
}

func (r *fakeProgressRepo) ListByUser(context.Context, string) ([]domain.UserProgress, error) {
	return nil, nil
}

func (r *fakeProgressRepo) Apply(_ context.Context, u repository.ProgressUpdate) error {
	r.updates = append(r.updates, u)
	return nil
}

type fakeAchievementRepo struct {
	granted []domain.Achievement
	have    map[string]bool
}

func (r *fakeAchievementRepo) ListByUser(context.Context, string) ([]domain.Achievement, error) {
	return nil, nil
}

func (r *fakeAchievementRepo) Grant(_ context.Context, a *domain.Achievement) error {
	r.granted = append(r.granted, *a)
	if r.have == nil {
		r.have = make(map[string]bool)
	}
	r.have[a.AchievementType] = true
	return nil
}

func (r *fakeAchievementRepo) HasType(_ context.Context, _, achievementType string) (bool, error) {
	return r.have[achievementType], nil
}

func newQuiz(ai *fakeAI) (*UseCase, *fakeSessionRepo, *fakeProgressRepo, *fakeAchievementRepo) {
	sessions := &fakeSessionRepo{}
	progress := &fakeProgressRepo{}
	achievements := &fakeAchievementRepo{}
	uc := New(ai, sessions, progress, achievements, fakeClock{now: time.Date(2026, 2, 10, 11, 0, 0, 0, time.UTC)}, nil)
	return uc, sessions, progress, achievements
}

const wellFormedReply = `Here are your questions:
[
  {"question": "What does CPU stand for?", "options": ["Central Processing Unit", "Computer Personal Unit", "Central Print Unit", "Core Processing Utility"], "correctAnswer": 0, "explanation": "CPU is the Central Processing Unit."},
  {"question": "Which structure is LIFO?", "options": ["Queue", "Stack", "Heap", "Graph"], "correctAnswer": 1, "explanation": "Stacks are last in, first out."}
]
Good luck!`

func TestGenerateParsesWrappedJSON(t *testing.T) {
	ai := &fakeAI{reply: wellFormedReply}
	uc, _, _, _ := newQuiz(ai)

	questions, err := uc.Generate(context.Background(), "u1", "Operating Systems", "medium", 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("len = %d, want 2", len(questions))
	}
	if questions[0].ID != 1 || questions[1].ID != 2 {
		t.Errorf("ids = %d,%d", questions[0].ID, questions[1].ID)
	}
	if questions[1].CorrectAnswer != 1 {
		t.Errorf("correct answer = %d, want 1", questions[1].CorrectAnswer)
	}
}

func TestGeneratePromptMentionsRequest(t *testing.T) {
	ai := &fakeAI{reply: wellFormedReply}
	uc, _, _, _ := newQuiz(ai)

	if _, err := uc.Generate(context.Background(), "u1", "Databases", "hard", 5); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	prompt := ai.prompts[0]
	for _, want := range []string{"5 multiple choice questions", "Databases", "hard", "JSON array"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateRejectsServiceTroubleReply(t *testing.T) {
	ai := &fakeAI{reply: "I'm currently experiencing technical difficulties, please retry."}
	uc, _, _, _ := newQuiz(ai)

	if _, err := uc.Generate(context.Background(), "u1", "Networks", "easy", 5); err == nil {
		t.Fatal("service-trouble reply accepted as a quiz")
	}
}

func TestGenerateFailureMessagesEscalate(t *testing.T) {
	ai := &fakeAI{err: errors.New("down")}
	uc, _, _, _ := newQuiz(ai)

	var messages []string
	for i := 0; i < 3; i++ {
		_, err := uc.Generate(context.Background(), "u1", "Networks", "easy", 5)
		if err == nil {
			t.Fatal("expected failure")
		}
		messages = append(messages, err.Error())
	}
	if !strings.Contains(messages[0], "high demand") {
		t.Errorf("first failure = %q", messages[0])
	}
	if !strings.Contains(messages[1], "wait a moment") {
		t.Errorf("second failure = %q", messages[1])
	}
	if !strings.Contains(messages[2], "extended issues") {
		t.Errorf("third failure = %q", messages[2])
	}

	// success resets the escalation
	ai.err = nil
	ai.reply = wellFormedReply
	if _, err := uc.Generate(context.Background(), "u1", "Networks", "easy", 5); err != nil {
		t.Fatalf("Generate after recovery: %v", err)
	}
	ai.err = errors.New("down again")
	_, err := uc.Generate(context.Background(), "u1", "Networks", "easy", 5)
	if err == nil || !strings.Contains(err.Error(), "high demand") {
		t.Errorf("escalation did not reset: %v", err)
	}
}

func TestParseQuestionsCoercesMalformedEntries(t *testing.T) {
	reply := `[
  {"options": ["W", "X", "Y", "Z"], "correctAnswer": 2},
  {"question": "Pick one", "options": ["only", "two"], "correctAnswer": 9, "explanation": "out of range index"},
  {"question": "Stringy", "options": ["a", "b", "c", "d"], "correctAnswer": "1"}
]`
	questions, err := ParseQuestions(reply)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if questions[0].Question != "Question text missing" {
		t.Errorf("question fallback = %q", questions[0].Question)
	}
	if questions[0].Explanation != "No explanation provided" {
		t.Errorf("explanation fallback = %q", questions[0].Explanation)
	}
	if got := questions[1].Options; len(got) != 4 || got[0] != "A" {
		t.Errorf("options fallback = %v", got)
	}
	if questions[1].CorrectAnswer != 0 {
		t.Errorf("out-of-range answer = %d, want 0", questions[1].CorrectAnswer)
	}
	if questions[2].CorrectAnswer != 0 {
		t.Errorf("string answer = %d, want 0", questions[2].CorrectAnswer)
	}
}

func TestParseQuestionsRejectsNonArrays(t *testing.T) {
	for _, reply := range []string{
		"no json here at all",
		"[]",
		"[ this is not valid json ]",
	} {
		if _, err := ParseQuestions(reply); !errors.Is(err, domain.ErrMalformedAIResponse) {
			t.Errorf("ParseQuestions(%q): got %v, want ErrMalformedAIResponse", reply, err)
		}
	}
}

func TestCompleteRecordsSessionAndProgress(t *testing.T) {
	uc, sessions, progress, _ := newQuiz(&fakeAI{})

	questions := []domain.QuizQuestion{
		{ID: 1, CorrectAnswer: 0, Options: []string{"a", "b", "c", "d"}},
		{ID: 2, CorrectAnswer: 2, Options: []string{"a", "b", "c", "d"}},
		{ID: 3, CorrectAnswer: 1, Options: []string{"a", "b", "c", "d"}},
		{ID: 4, CorrectAnswer: 3, Options: []string{"a", "b", "c", "d"}},
	}
	result, err := uc.Complete(context.Background(), "u1", "Algorithms", "medium", questions, []int{0, 2, 0, 0}, 130, []int{30, 40, 30, 30})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Score != 2 || result.Total != 4 || result.Percentage != 50 {
		t.Errorf("result = %+v", result)
	}

	if len(sessions.created) != 1 {
		t.Fatalf("sessions created = %d, want 1", len(sessions.created))
	}
	s := sessions.created[0]
	if s.Topic != "Algorithms Quiz (AI Generated)" {
		t.Errorf("topic = %q", s.Topic)
	}
	if s.SessionType != "quiz" {
		t.Errorf("session type = %q", s.SessionType)
	}
	if s.DurationMinutes != 3 {
		t.Errorf("duration = %d, want 3", s.DurationMinutes)
	}
	if s.Content["correct_answers"] != 2 {
		t.Errorf("correct_answers = %v", s.Content["correct_answers"])
	}

	if len(progress.updates) != 1 {
		t.Fatalf("progress updates = %d, want 1", len(progress.updates))
	}
	u := progress.updates[0]
	if u.Subject != "Algorithms" || u.Topic != "AI Quiz Practice" {
		t.Errorf("progress target = %s/%s", u.Subject, u.Topic)
	}
	if u.QuizScore == nil || *u.QuizScore != 50 {
		t.Errorf("quiz score = %v", u.QuizScore)
	}
}

func TestCompletePerfectScoreGrantsAchievementOnce(t *testing.T) {
	uc, _, _, achievements := newQuiz(&fakeAI{})

	questions := []domain.QuizQuestion{
		{ID: 1, CorrectAnswer: 1, Options: []string{"a", "b", "c", "d"}},
		{ID: 2, CorrectAnswer: 0, Options: []string{"a", "b", "c", "d"}},
	}
	answers := []int{1, 0}

	for i := 0; i < 2; i++ {
		result, err := uc.Complete(context.Background(), "u1", "Graphs", "hard", questions, answers, 60, []int{30, 30})
		if err != nil {
			t.Fatalf("Complete %d: %v", i, err)
		}
		if result.Percentage != 100 {
			t.Fatalf("percentage = %d", result.Percentage)
		}
	}
	if len(achievements.granted) != 1 {
		t.Fatalf("achievements granted = %d, want 1", len(achievements.granted))
	}
	if achievements.granted[0].AchievementType != "quiz_perfect" {
		t.Errorf("type = %q", achievements.granted[0].AchievementType)
	}
}

func TestCompleteRejectsMismatchedAnswers(t *testing.T) {
	uc, _, _, _ := newQuiz(&fakeAI{})
	questions := []domain.QuizQuestion{{ID: 1, CorrectAnswer: 0}}

	if _, err := uc.Complete(context.Background(), "u1", "Graphs", "easy", questions, nil, 10, nil); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("got %v, want ErrInvalidPayload", err)
	}
}
