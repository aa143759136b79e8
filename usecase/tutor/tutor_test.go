package tutor

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
	reply string
	err   error
	calls int
}

func (a *fakeAI) Complete(_ context.Context, _, _ string) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

type fakeChatRepo struct {
	messages []domain.ChatMessage
}

func (r *fakeChatRepo) Append(_ context.Context, m *domain.ChatMessage) error {
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeChatRepo) History(_ context.Context, userID, sessionID string, _ int) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID && m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

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

func newTutor(ai *fakeAI) (*UseCase, *fakeChatRepo, *fakeProgressRepo) {
	chat := &fakeChatRepo{}
	progress := &fakeProgressRepo{}
	uc := New(ai, chat, progress, fakeClock{now: time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)}, nil)
	return uc, chat, progress
}

func TestSendPersistsExchange(t *testing.T) {
	ai := &fakeAI{reply: "A binary tree is a tree where each node has at most two children."}
	uc, chat, _ := newTutor(ai)

	reply, err := uc.Send(context.Background(), "u1", "s1", "What is a binary tree?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Role != domain.ChatRoleAssistant {
		t.Errorf("role = %s", reply.Role)
	}
	if reply.HasCode {
		t.Error("plain text reply flagged as code")
	}
	if len(chat.messages) != 2 {
		t.Fatalf("persisted = %d messages, want 2", len(chat.messages))
	}
	if chat.messages[0].Role != domain.ChatRoleUser || chat.messages[1].Role != domain.ChatRoleAssistant {
		t.Errorf("persisted roles = %s,%s", chat.messages[0].Role, chat.messages[1].Role)
	}
}

func TestSendFlagsCodeReplies(t *testing.T) {
	ai := &fakeAI{reply: "Here you go:\n```go\nfunc main() {}\n```"}
	uc, _, _ := newTutor(ai)

	reply, err := uc.Send(context.Background(), "u1", "s1", "Show me a Go program")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !reply.HasCode {
		t.Error("fenced code reply not flagged")
	}
}

func TestSendRejectsBlankMessage(t *testing.T) {
	uc, chat, _ := newTutor(&fakeAI{reply: "hi"})

	if _, err := uc.Send(context.Background(), "u1", "s1", "   "); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("got %v, want ErrInvalidPayload", err)
	}
	if len(chat.messages) != 0 {
		t.Error("blank message was persisted")
	}
}

func TestSendUpdatesProgress(t *testing.T) {
	ai := &fakeAI{reply: "Sure."}
	uc, _, progress := newTutor(ai)

	long := strings.Repeat("x", 80)
	if _, err := uc.Send(context.Background(), "u1", "s1", long); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(progress.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(progress.updates))
	}
	u := progress.updates[0]
	if u.Subject != "Computer Science" {
		t.Errorf("subject = %q", u.Subject)
	}
	if len(u.Topic) != 50 {
		t.Errorf("topic length = %d, want 50", len(u.Topic))
	}
	if u.ProgressDelta != 10 || u.StudyMinutes != 2 {
		t.Errorf("delta = %d, minutes = %d", u.ProgressDelta, u.StudyMinutes)
	}
	if u.QuizScore != nil {
		t.Error("chat update carried a quiz score")
	}
}

func TestSendFallbackEscalates(t *testing.T) {
	ai := &fakeAI{err: errors.New("rate limited")}
	uc, chat, progress := newTutor(ai)

	var replies []string
	for i := 0; i < 4; i++ {
		reply, err := uc.Send(context.Background(), "u1", "s1", "hello?")
		if err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
		replies = append(replies, reply.Content)
	}

	if replies[0] != failureReplies[0] || replies[1] != failureReplies[1] {
		t.Error("first two failures did not use the first two fallbacks")
	}
	if replies[2] != failureReplies[2] || replies[3] != failureReplies[2] {
		t.Error("later failures should repeat the final fallback")
	}

	// only user messages are persisted while the assistant is down
	for _, m := range chat.messages {
		if m.Role != domain.ChatRoleUser {
			t.Errorf("fallback reply was persisted: %q", m.Content)
		}
	}
	if len(progress.updates) != 0 {
		t.Error("failed exchanges updated progress")
	}
}

func TestSendFailureCountResetsOnSuccess(t *testing.T) {
	ai := &fakeAI{err: errors.New("down")}
	uc, _, _ := newTutor(ai)

	if _, err := uc.Send(context.Background(), "u1", "s1", "q1"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	ai.err = nil
	ai.reply = "Answer."
	if _, err := uc.Send(context.Background(), "u1", "s1", "q2"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	ai.err = errors.New("down again")
	reply, err := uc.Send(context.Background(), "u1", "s1", "q3")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Content != failureReplies[0] {
		t.Errorf("fallback did not reset after success: %q", reply.Content)
	}
}

func TestHistoryScopedToSession(t *testing.T) {
	ai := &fakeAI{reply: "ok"}
	uc, _, _ := newTutor(ai)

	if _, err := uc.Send(context.Background(), "u1", "s1", "first"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := uc.Send(context.Background(), "u1", "s2", "other session"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	history, err := uc.History(context.Background(), "u1", "s1", 50)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d messages, want 2", len(history))
	}
	for _, m := range history {
		if m.SessionID != "s1" {
			t.Errorf("leaked message from session %s", m.SessionID)
		}
	}
}
