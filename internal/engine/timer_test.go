package engine

import (
	"errors"
	"testing"
	"time"

	"retroquest/internal/storage"
)

func testNow() time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func TestTimerLifecycle(t *testing.T) {
	now := testNow()
	tm := &Timer{Duration: 25}
	tm.Reset()

	if tm.Phase() != TimerIdle {
		t.Fatalf("fresh timer phase = %s, want idle", tm.Phase())
	}
	if tm.Remaining != 25*60 {
		t.Fatalf("fresh timer remaining = %d, want %d", tm.Remaining, 25*60)
	}

	if err := tm.Start(now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if tm.Phase() != TimerRunning {
		t.Fatalf("phase after start = %s, want running", tm.Phase())
	}

	// Starting a running timer is an invalid transition.
	var serr TimerStateError
	if err := tm.Start(now); !errors.As(err, &serr) {
		t.Fatalf("start while running: got %v, want TimerStateError", err)
	}

	now = now.Add(time.Second)
	if expired := tm.Tick(now); expired {
		t.Fatal("tick with plenty remaining should not expire")
	}
	if tm.Remaining != 25*60-1 {
		t.Fatalf("remaining after tick = %d", tm.Remaining)
	}

	if err := tm.Pause(now); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if tm.Phase() != TimerPaused {
		t.Fatalf("phase after pause = %s, want paused", tm.Phase())
	}
	if err := tm.Pause(now); err == nil {
		t.Fatal("pausing a paused timer should fail")
	}

	// Ticks while paused are no-ops.
	before := tm.Remaining
	if tm.Tick(now.Add(time.Second)) {
		t.Fatal("tick while paused should not expire")
	}
	if tm.Remaining != before {
		t.Fatalf("tick while paused changed remaining: %d -> %d", before, tm.Remaining)
	}

	// Resume keeps the remaining seconds.
	if err := tm.Start(now.Add(time.Minute)); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if tm.Remaining != before {
		t.Fatalf("resume changed remaining: %d -> %d", before, tm.Remaining)
	}

	tm.Reset()
	if tm.Phase() != TimerIdle || tm.Remaining != 25*60 {
		t.Fatalf("reset: phase=%s remaining=%d", tm.Phase(), tm.Remaining)
	}
}

func TestTimerTickExpires(t *testing.T) {
	now := testNow()
	tm := &Timer{Duration: 1, Remaining: 2, Running: true, LastUpdate: &now}

	if tm.Tick(now.Add(time.Second)) {
		t.Fatal("tick to 1s remaining should not expire")
	}
	if !tm.Tick(now.Add(2 * time.Second)) {
		t.Fatal("tick to 0s remaining should expire")
	}
	if tm.Phase() != TimerExpired {
		t.Fatalf("phase after expiry = %s", tm.Phase())
	}
	if tm.Running {
		t.Fatal("expired timer should not be running")
	}

	// A second tick on an expired timer is a no-op.
	if tm.Tick(now.Add(3 * time.Second)) {
		t.Fatal("tick on expired timer should not re-expire")
	}
}

func TestTimerReconcileSubtractsGap(t *testing.T) {
	start := testNow()
	tm := &Timer{Duration: 25, Remaining: 600, Running: true, LastUpdate: &start}

	// 5 minutes passed while the app was closed.
	if expired := tm.Reconcile(start.Add(5 * time.Minute)); expired {
		t.Fatal("5 minute gap should not expire a 10 minute remainder")
	}
	if tm.Remaining != 300 {
		t.Fatalf("remaining = %d, want 300", tm.Remaining)
	}
	if !tm.Running {
		t.Fatal("reconciled timer should keep running")
	}
}

func TestTimerReconcileExpiresAcrossGap(t *testing.T) {
	start := testNow()
	tm := &Timer{Duration: 25, Remaining: 600, Running: true, LastUpdate: &start}

	if expired := tm.Reconcile(start.Add(30 * time.Minute)); !expired {
		t.Fatal("30 minute gap should expire a 10 minute remainder")
	}
	if tm.Remaining != 0 || tm.Running {
		t.Fatalf("expired timer: remaining=%d running=%v", tm.Remaining, tm.Running)
	}
	if tm.Phase() != TimerExpired {
		t.Fatalf("phase = %s, want expired", tm.Phase())
	}
}

func TestTimerReconcileIgnoresPausedAndBackwardClocks(t *testing.T) {
	start := testNow()

	paused := &Timer{Duration: 25, Remaining: 600, Running: false, LastUpdate: &start}
	if paused.Reconcile(start.Add(time.Hour)) {
		t.Fatal("paused timer should not reconcile")
	}
	if paused.Remaining != 600 {
		t.Fatalf("paused timer remaining changed: %d", paused.Remaining)
	}

	running := &Timer{Duration: 25, Remaining: 600, Running: true, LastUpdate: &start}
	if running.Reconcile(start.Add(-time.Minute)) {
		t.Fatal("backward clock should not expire")
	}
	if running.Remaining != 600 {
		t.Fatalf("backward clock changed remaining: %d", running.Remaining)
	}
}

func TestTimerFromQuest(t *testing.T) {
	if tm := TimerFromQuest(&storage.Quest{}); tm != nil {
		t.Fatal("quest without timer should yield nil")
	}

	d := 25
	r := 600
	q := &storage.Quest{TimerDuration: &d, TimerRemaining: &r, TimerRunning: true}
	tm := TimerFromQuest(q)
	if tm == nil || tm.Duration != 25 || tm.Remaining != 600 || !tm.Running {
		t.Fatalf("reconstructed timer = %+v", tm)
	}

	// Persisted remainders are clamped into [0, duration].
	over := 99999
	q = &storage.Quest{TimerDuration: &d, TimerRemaining: &over}
	if tm := TimerFromQuest(q); tm.Remaining != 25*60 {
		t.Fatalf("over-range remaining = %d, want %d", tm.Remaining, 25*60)
	}
	neg := -5
	q = &storage.Quest{TimerDuration: &d, TimerRemaining: &neg}
	if tm := TimerFromQuest(q); tm.Remaining != 0 {
		t.Fatalf("negative remaining = %d, want 0", tm.Remaining)
	}

	// Missing remaining defaults to the full duration.
	q = &storage.Quest{TimerDuration: &d}
	if tm := TimerFromQuest(q); tm.Remaining != 25*60 {
		t.Fatalf("default remaining = %d, want %d", tm.Remaining, 25*60)
	}
}

func TestTimerApplyToRoundTrip(t *testing.T) {
	now := testNow()
	tm := &Timer{Duration: 45, Remaining: 100, Running: true, LastUpdate: &now}

	var q storage.Quest
	tm.ApplyTo(&q)

	back := TimerFromQuest(&q)
	if back == nil || back.Duration != 45 || back.Remaining != 100 || !back.Running {
		t.Fatalf("round trip = %+v", back)
	}
	if back.LastUpdate == nil || !back.LastUpdate.Equal(now) {
		t.Fatalf("round trip lost LastUpdate: %v", back.LastUpdate)
	}
}
