package engine

import (
	"time"

	"retroquest/internal/storage"
)

// TimerPhase is the countdown sub-state of a quest with a timer.
type TimerPhase string

const (
	TimerIdle    TimerPhase = "idle"
	TimerRunning TimerPhase = "running"
	TimerPaused  TimerPhase = "paused"
	TimerExpired TimerPhase = "expired"
)

// TimerDurations are the canonical countdown choices, in minutes. Any
// positive duration is accepted.
var TimerDurations = []int{15, 30, 45, 60, 120}

// Timer is the countdown state machine attached to a quest that carries a
// timerDuration. It never persists itself: after any mutation the caller
// writes the snapshot back onto the quest and hands it to the store.
type Timer struct {
	Duration   int // minutes
	Remaining  int // seconds
	Running    bool
	LastUpdate *time.Time
}

// TimerFromQuest reconstructs the timer from persisted quest fields.
// Returns nil for quests without a timer.
func TimerFromQuest(q *storage.Quest) *Timer {
	if !q.HasTimer() {
		return nil
	}
	t := &Timer{
		Duration:   *q.TimerDuration,
		Remaining:  *q.TimerDuration * 60,
		Running:    q.TimerRunning,
		LastUpdate: q.TimerLastUpdate,
	}
	if q.TimerRemaining != nil {
		t.Remaining = *q.TimerRemaining
	}
	if t.Remaining < 0 {
		t.Remaining = 0
	}
	if max := t.Duration * 60; t.Remaining > max {
		t.Remaining = max
	}
	return t
}

// ApplyTo writes the timer snapshot back onto the quest for persistence.
func (t *Timer) ApplyTo(q *storage.Quest) {
	d := t.Duration
	r := t.Remaining
	q.TimerDuration = &d
	q.TimerRemaining = &r
	q.TimerRunning = t.Running
	q.TimerLastUpdate = t.LastUpdate
}

// Phase derives the current state.
func (t *Timer) Phase() TimerPhase {
	switch {
	case t.Remaining <= 0:
		return TimerExpired
	case t.Running:
		return TimerRunning
	case t.LastUpdate != nil:
		return TimerPaused
	default:
		return TimerIdle
	}
}

// Start moves idle/paused to running.
func (t *Timer) Start(now time.Time) error {
	switch t.Phase() {
	case TimerIdle, TimerPaused:
		t.Running = true
		t.LastUpdate = &now
		return nil
	default:
		return TimerStateError{Op: "start", Phase: t.Phase()}
	}
}

// Pause moves running to paused, freezing the current remaining seconds.
func (t *Timer) Pause(now time.Time) error {
	if t.Phase() != TimerRunning {
		return TimerStateError{Op: "pause", Phase: t.Phase()}
	}
	t.Running = false
	t.LastUpdate = &now
	return nil
}

// Reset returns the timer to idle with the full duration, from any state.
func (t *Timer) Reset() {
	t.Remaining = t.Duration * 60
	t.Running = false
	t.LastUpdate = nil
}

// Tick consumes one elapsed second while running. It reports whether the
// timer just expired; expiry signals quest auto-completion to the caller.
func (t *Timer) Tick(now time.Time) bool {
	if t.Phase() != TimerRunning {
		return false
	}
	t.Remaining--
	t.LastUpdate = &now
	if t.Remaining <= 0 {
		t.Remaining = 0
		t.Running = false
		return true
	}
	return false
}

// Reconcile corrects a reconstructed timer for wall-clock time that passed
// while the application was not running. If the persisted state was running,
// the gap since LastUpdate is subtracted from the remaining seconds; driving
// remaining to zero expires the timer immediately. Pure: no side effects
// beyond the receiver.
func (t *Timer) Reconcile(now time.Time) (expired bool) {
	if !t.Running || t.LastUpdate == nil {
		return false
	}
	elapsed := int(now.Sub(*t.LastUpdate).Seconds())
	if elapsed <= 0 {
		return false
	}
	t.Remaining -= elapsed
	t.LastUpdate = &now
	if t.Remaining <= 0 {
		t.Remaining = 0
		t.Running = false
		return true
	}
	return false
}
