package domain

// QuizQuestion is one validated multiple-choice question. Options always has
// exactly four entries and CorrectAnswer is always within [0,3]; the quiz
// parser coerces anything malformed into this shape.
type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizResult summarizes a finished quiz attempt.
type QuizResult struct {
	Category     string `json:"category"`
	Difficulty   string `json:"difficulty"`
	Score        int    `json:"score"`
	Total        int    `json:"total"`
	Percentage   int    `json:"percentage"`
	TotalSeconds int    `json:"total_seconds"`
}
