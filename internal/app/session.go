package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"brainblitz-service/internal/domain"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusErrored
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusErrored:
		return "errored"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// QuestionSource fetches a normalized question set for the given settings.
// Implementations classify failures as domain.ErrFetchTimeout,
// *domain.HTTPError or domain.ErrEmptyResult.
type QuestionSource interface {
	Fetch(ctx context.Context, settings domain.Settings) ([]domain.Question, error)
}

// Session is the state machine for one play-through: it owns the question
// list, the cursor, the score, the per-question answer state and the
// countdown. All mutations are serialized behind one mutex so every
// transition is atomic with respect to observers. Finished is terminal; a
// replay needs a fresh Session.
type Session struct {
	settings domain.Settings
	source   QuestionSource
	now      func() time.Time

	mu         sync.Mutex
	status     Status
	generation uint64
	loadErr    error

	questions []domain.Question
	current   int
	score     int
	startedAt time.Time

	selected    string
	hasSelected bool
	correct     bool
	revealed    bool

	timer  *Timer
	result *domain.Result
}

// NewSession validates the settings and builds an idle session.
func NewSession(source QuestionSource, settings domain.Settings, timerBudget int) (*Session, error) {
	return NewSessionWithClock(source, settings, timerBudget, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(source QuestionSource, settings domain.Settings, timerBudget int, now func() time.Time) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		settings: settings,
		source:   source,
		now:      now,
		status:   StatusIdle,
		timer:    NewTimer(timerBudget),
	}, nil
}

// Settings returns the immutable settings this session was created with.
func (s *Session) Settings() domain.Settings {
	return s.settings
}

// Load fetches the question set and moves the session to ready, or to
// errored with a classified reason. Valid from idle or errored, which makes
// retry after a failure just another Load. A Load whose fetch resolves after
// a newer Load has started never touches session state.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.status != StatusIdle && s.status != StatusErrored {
		s.mu.Unlock()
		return fmt.Errorf("%w: load from %s", domain.ErrInvalidState, s.status)
	}
	s.status = StatusLoading
	s.loadErr = nil
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	questions, err := s.source.Fetch(ctx, s.settings)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return domain.ErrLoadSuperseded
	}

	if err == nil && len(questions) == 0 {
		// Never go ready with zero questions; result math divides by total.
		err = domain.ErrEmptyResult
	}
	if err != nil {
		s.status = StatusErrored
		s.loadErr = classifyFetchError(err)
		return s.loadErr
	}

	s.questions = questions
	s.current = 0
	s.score = 0
	s.startedAt = s.now()
	s.resetAnswerLocked()
	s.timer.Reset()
	s.status = StatusReady
	return nil
}

// LoadError returns the classified reason while the session is errored.
func (s *Session) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// SelectAnswer records the player's pick for the current question. Selection
// is write-once: once an answer or a timer expiry has been applied, further
// calls are no-ops reporting the recorded correctness. A correct first pick
// increments the score exactly once, pauses the timer and reveals feedback.
func (s *Session) SelectAnswer(option string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return false, fmt.Errorf("%w: select in %s", domain.ErrInvalidState, s.status)
	}
	if s.hasSelected || s.revealed {
		return s.correct, nil
	}

	s.selected = option
	s.hasSelected = true
	s.correct = option == s.questions[s.current].CorrectAnswer
	if s.correct {
		s.score++
	}
	s.timer.Pause()
	s.revealed = true
	return s.correct, nil
}

// ExpireTimer applies a countdown expiry: the question stays unanswered,
// counts as incorrect and feedback is revealed. A second expiry, or an
// expiry after an answer, is a no-op.
func (s *Session) ExpireTimer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return fmt.Errorf("%w: expire in %s", domain.ErrInvalidState, s.status)
	}
	s.expireLocked()
	return nil
}

// Tick advances the countdown by one unit and reports whether it expired on
// this tick. Outside the ready state ticks are ignored.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return false
	}
	if !s.timer.Tick() {
		return false
	}
	s.expireLocked()
	return true
}

func (s *Session) expireLocked() {
	if s.hasSelected || s.revealed {
		return
	}
	s.timer.Pause()
	s.revealed = true
}

// Advance moves to the next question, or finishes the session when the
// current question is the last one. It is only legal after the current
// question has been revealed. The returned bool reports whether the session
// just finished.
func (s *Session) Advance() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return false, fmt.Errorf("%w: advance in %s", domain.ErrInvalidState, s.status)
	}
	if !s.revealed {
		return false, fmt.Errorf("%w: advance before reveal", domain.ErrInvalidState)
	}

	if s.current == len(s.questions)-1 {
		result := domain.NewResult(s.score, len(s.questions), s.now().Sub(s.startedAt), s.now())
		s.result = &result
		s.status = StatusFinished
		return true, nil
	}

	s.current++
	s.resetAnswerLocked()
	s.timer.Reset()
	return false, nil
}

// Result returns the outcome computed at the finished transition. Calling it
// earlier is a contract violation.
func (s *Session) Result() (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusFinished || s.result == nil {
		return domain.Result{}, fmt.Errorf("%w: result before finish", domain.ErrInvalidState)
	}
	return *s.result, nil
}

func (s *Session) resetAnswerLocked() {
	s.selected = ""
	s.hasSelected = false
	s.correct = false
	s.revealed = false
}

// Snapshot is an observer-safe copy of the session state for presentation.
type Snapshot struct {
	Status    Status
	Index     int
	Total     int
	Score     int
	Remaining int
	Revealed  bool
	Selected  string
	Question  domain.Question
}

// Snapshot returns the current presentation view. The question copy includes
// the correct answer; transports decide what to expose before reveal.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Status:    s.status,
		Index:     s.current,
		Total:     len(s.questions),
		Score:     s.score,
		Remaining: s.timer.Remaining(),
		Revealed:  s.revealed,
		Selected:  s.selected,
	}
	if s.status == StatusReady {
		snap.Question = s.questions[s.current]
	}
	return snap
}

func classifyFetchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrFetchTimeout, err)
	}
	return err
}
