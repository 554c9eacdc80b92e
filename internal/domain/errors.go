package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings is returned when session settings fall outside the
	// accepted bounds.
	ErrInvalidSettings = errors.New("invalid quiz settings")
	// ErrFetchTimeout classifies a question fetch that exceeded its budget.
	ErrFetchTimeout = errors.New("question fetch timed out")
	// ErrEmptyResult classifies a fetch that produced zero or semantically
	// invalid questions.
	ErrEmptyResult = errors.New("question source returned no questions")
	// ErrInvalidState is returned when a session operation is invoked in a
	// state that forbids it. Under correct usage this never happens.
	ErrInvalidState = errors.New("operation not valid in current session state")
	// ErrLoadSuperseded is returned to a load whose fetch resolved after a
	// newer load already took over the session.
	ErrLoadSuperseded = errors.New("load superseded by a newer load")
)

// HTTPError classifies a non-success transport response from a question
// provider.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("question provider returned status %d", e.Status)
}
