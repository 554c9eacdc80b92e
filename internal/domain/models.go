package domain

import "time"

// Difficulty levels accepted by question sources. DifficultyAny means the
// source must not filter by difficulty at all.
const (
	DifficultyAny    = "any"
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// CategoryAny disables category filtering when fetching questions.
const CategoryAny = "any"

// Bounds on how many questions a single session may request.
const (
	MinQuestions = 5
	MaxQuestions = 20
)

// Settings describes one session's question selection. Immutable once a
// session has been created from it.
type Settings struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Amount     int    `json:"amount"`
}

// Validate checks the settings against the bounds question sources expect.
func (s Settings) Validate() error {
	if s.Amount < MinQuestions || s.Amount > MaxQuestions {
		return ErrInvalidSettings
	}
	switch s.Difficulty {
	case DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return ErrInvalidSettings
	}
	return nil
}

// Question is a normalized multiple-choice question. Text fields are already
// entity-decoded and Options holds the correct answer plus all distractors in
// a shuffle order fixed at load time.
type Question struct {
	Category      string   `json:"category"`
	Type          string   `json:"type"` // "multiple" or "boolean"
	Difficulty    string   `json:"difficulty"`
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"correctAnswer"`
	Distractors   []string `json:"distractors"`
	Options       []string `json:"options"`
}

// Result is the immutable outcome of a finished session.
type Result struct {
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"totalQuestions"`
	CorrectAnswers   int       `json:"correctAnswers"`
	IncorrectAnswers int       `json:"incorrectAnswers"`
	Percentage       int       `json:"percentage"`
	ElapsedSeconds   int       `json:"elapsedSeconds"`
	CompletedAt      time.Time `json:"completedAt"`
}

// LeaderboardEntry is one persisted row of the top-10 board. Score is the
// session percentage, not the raw correct count.
type LeaderboardEntry struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
}

// Category is one entry of the question provider's category catalog.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
