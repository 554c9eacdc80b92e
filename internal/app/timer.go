package app

// DefaultTimerBudget is the per-question countdown in ticks (one tick per
// second when driven by a wall-clock ticker).
const DefaultTimerBudget = 15

// Timer is the per-question countdown. It is a plain tick-driven value with
// no scheduling of its own; whoever owns the session feeds it ticks. Expiry
// fires exactly once, after which the timer stays inert until Reset.
type Timer struct {
	budget    int
	remaining int
	paused    bool
	expired   bool
}

func NewTimer(budget int) *Timer {
	if budget <= 0 {
		budget = DefaultTimerBudget
	}
	return &Timer{budget: budget, remaining: budget}
}

// Tick decrements the countdown and reports whether this tick crossed zero.
// Only the crossing tick returns true.
func (t *Timer) Tick() bool {
	if t.paused || t.expired {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.expired = true
		return true
	}
	return false
}

// Pause freezes the remaining value. The game never resumes a paused
// question; the next Reset arms the timer again.
func (t *Timer) Pause() {
	t.paused = true
}

// Reset re-arms the timer to the full budget for a new question.
func (t *Timer) Reset() {
	t.remaining = t.budget
	t.paused = false
	t.expired = false
}

// Remaining returns the current countdown value.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Expired reports whether the countdown has fired.
func (t *Timer) Expired() bool {
	return t.expired
}
