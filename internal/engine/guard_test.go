package engine

import (
	"testing"
	"time"
)

// testClock is a manually advanced clock for guard tests.
type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGuard(cooldown time.Duration) (*Guard, *testClock) {
	clk := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	g := NewGuard(cooldown)
	g.now = clk.now
	return g, clk
}

func TestGuardSuppressesWithinWindow(t *testing.T) {
	g, clk := newTestGuard(500 * time.Millisecond)

	if !g.Allow() {
		t.Fatal("first trigger should be allowed")
	}
	if g.Allow() {
		t.Fatal("immediate re-trigger should be suppressed")
	}

	clk.advance(499 * time.Millisecond)
	if g.Allow() {
		t.Fatal("re-trigger at 499ms should still be suppressed")
	}

	clk.advance(1 * time.Millisecond)
	if !g.Allow() {
		t.Fatal("re-trigger at 500ms should be allowed")
	}
}

func TestGuardTriggerRunsOnce(t *testing.T) {
	g, _ := newTestGuard(500 * time.Millisecond)

	runs := 0
	for i := 0; i < 5; i++ {
		g.Trigger(func() { runs++ })
	}
	if runs != 1 {
		t.Fatalf("5 rapid triggers ran %d times, want 1", runs)
	}
}

func TestGuardSuppressedDoesNotArm(t *testing.T) {
	g, _ := newTestGuard(500 * time.Millisecond)

	if g.Suppressed() {
		t.Fatal("fresh guard should not be suppressed")
	}
	// Probing must not start a window.
	if !g.Allow() {
		t.Fatal("first trigger after probe should be allowed")
	}
	if !g.Suppressed() {
		t.Fatal("guard should report suppressed inside window")
	}
}

func TestGuardRelease(t *testing.T) {
	g, _ := newTestGuard(500 * time.Millisecond)

	if !g.Allow() {
		t.Fatal("first trigger should be allowed")
	}
	g.Release()
	if !g.Allow() {
		t.Fatal("trigger after release should be allowed")
	}
}

func TestGuardDefaultsCooldown(t *testing.T) {
	g := NewGuard(0)
	if g.cooldown != DefaultGuardCooldown {
		t.Fatalf("cooldown = %v, want %v", g.cooldown, DefaultGuardCooldown)
	}
}

func TestGuardRegistryIsolatesKeys(t *testing.T) {
	r := NewGuardRegistry(500 * time.Millisecond)

	a := r.Get("complete:a")
	if a != r.Get("complete:a") {
		t.Fatal("same key should return same guard")
	}
	if a == r.Get("complete:b") {
		t.Fatal("different keys should return different guards")
	}

	if !a.Allow() {
		t.Fatal("guard a should allow")
	}
	if !r.Get("complete:b").Allow() {
		t.Fatal("guard b should be independent of a's window")
	}

	r.Drop("complete:a")
	if a == r.Get("complete:a") {
		t.Fatal("dropped key should get a fresh guard")
	}
}
