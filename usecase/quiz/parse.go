package quiz

import (
	"encoding/json"
	"strings"

	"github.com/studybuddy/backend/domain"
)

const (
	fallbackQuestion    = "Question text missing"
	fallbackExplanation = "No explanation provided"
)

var fallbackOptions = []string{"A", "B", "C", "D"}

type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer any      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// ParseQuestions extracts a question array from a model reply. Replies often
// wrap the JSON in prose, so parsing starts at the first '[' and ends at the
// last ']'. Individual questions are coerced field by field; a missing or
// malformed field falls back to a safe default rather than rejecting the
// whole quiz.
func ParseQuestions(reply string) ([]domain.QuizQuestion, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end == -1 || end < start {
		return nil, domain.ErrMalformedAIResponse
	}

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, domain.ErrMalformedAIResponse
	}
	if len(raw) == 0 {
		return nil, domain.ErrMalformedAIResponse
	}

	questions := make([]domain.QuizQuestion, 0, len(raw))
	for i, q := range raw {
		questions = append(questions, domain.QuizQuestion{
			ID:            i + 1,
			Question:      coalesce(q.Question, fallbackQuestion),
			Options:       coerceOptions(q.Options),
			CorrectAnswer: coerceAnswer(q.CorrectAnswer),
			Explanation:   coalesce(q.Explanation, fallbackExplanation),
		})
	}
	return questions, nil
}

func coalesce(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func coerceOptions(options []string) []string {
	if len(options) == 4 {
		return options
	}
	out := make([]string, len(fallbackOptions))
	copy(out, fallbackOptions)
	return out
}

func coerceAnswer(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	idx := int(f)
	if idx < 0 || idx > 3 || float64(idx) != f {
		return 0
	}
	return idx
}
