// Package focus implements the fixed-duration focus countdown. Remaining
// time is always recomputed from wall-clock instants instead of decrementing
// a counter, so a throttled or suspended tick never accumulates drift.
package focus

import "time"

// State is the countdown lifecycle position.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
	StateStopped   State = "stopped"
)

// Timer is a pure countdown over explicit time instants. It holds no
// goroutines and no clock; callers pass now into every transition, which
// keeps the arithmetic directly testable.
type Timer struct {
	duration time.Duration
	state    State

	// runOrigin is the instant the current running segment began.
	runOrigin time.Time
	// pausedElapsed accumulates run time from segments before the last pause.
	pausedElapsed time.Duration
}

func NewTimer(duration time.Duration) *Timer {
	return &Timer{
		duration: duration,
		state:    StateIdle,
	}
}

func (t *Timer) State() State            { return t.state }
func (t *Timer) Duration() time.Duration { return t.duration }

// Elapsed returns total run time, excluding paused stretches.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	switch t.state {
	case StateRunning:
		elapsed := t.pausedElapsed + now.Sub(t.runOrigin)
		if elapsed > t.duration {
			return t.duration
		}
		return elapsed
	case StatePaused:
		return t.pausedElapsed
	case StateCompleted, StateStopped:
		return t.duration
	default:
		return 0
	}
}

// Remaining returns the countdown value, clamped at zero.
func (t *Timer) Remaining(now time.Time) time.Duration {
	remaining := t.duration - t.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Start begins the countdown. Only valid from idle.
func (t *Timer) Start(now time.Time) bool {
	if t.state != StateIdle {
		return false
	}
	t.runOrigin = now
	t.state = StateRunning
	return true
}

// Pause freezes the countdown, capturing elapsed-so-far. Remaining time then
// stays constant regardless of further wall-clock passage.
func (t *Timer) Pause(now time.Time) bool {
	if t.state != StateRunning {
		return false
	}
	t.pausedElapsed += now.Sub(t.runOrigin)
	t.state = StatePaused
	return true
}

// Resume rebases the run origin so elapsed time before the pause is kept.
func (t *Timer) Resume(now time.Time) bool {
	if t.state != StatePaused {
		return false
	}
	t.runOrigin = now
	t.state = StateRunning
	return true
}

// Expired reports whether a running countdown has reached zero.
func (t *Timer) Expired(now time.Time) bool {
	return t.state == StateRunning && t.Remaining(now) == 0
}

// Complete marks a natural finish. Returns false if the timer already
// reached a terminal state.
func (t *Timer) Complete() bool {
	if t.state == StateCompleted || t.state == StateStopped {
		return false
	}
	t.state = StateCompleted
	return true
}

// Stop is a manual abort that finalizes like completion.
func (t *Timer) Stop() bool {
	if t.state == StateCompleted || t.state == StateStopped {
		return false
	}
	t.state = StateStopped
	return true
}
