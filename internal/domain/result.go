package domain

import "time"

// NewResult derives the final result of a session. Percentage is rounded to
// the nearest integer with halves rounding up; callers must guarantee
// total > 0 (a zero-question load never reaches the finished state).
func NewResult(correct, total int, elapsed time.Duration, completedAt time.Time) Result {
	return Result{
		Score:            correct,
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		IncorrectAnswers: total - correct,
		Percentage:       (200*correct + total) / (2 * total),
		ElapsedSeconds:   int(elapsed / time.Second),
		CompletedAt:      completedAt,
	}
}
