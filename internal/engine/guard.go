package engine

import (
	"sync"
	"time"
)

// DefaultGuardCooldown is the debounce window applied when none is configured.
const DefaultGuardCooldown = 500 * time.Millisecond

// Guard is a single-flight debounce: after an allowed trigger it suppresses
// further triggers until the cooldown elapses. The window starts at
// invocation time, not action completion time.
//
// This is a best-effort anti-double-submit safeguard, not a security
// boundary.
type Guard struct {
	mu         sync.Mutex
	cooldown   time.Duration
	armedUntil time.Time
	now        func() time.Time
}

// NewGuard returns a guard with the given cooldown window. Non-positive
// cooldowns fall back to DefaultGuardCooldown.
func NewGuard(cooldown time.Duration) *Guard {
	if cooldown <= 0 {
		cooldown = DefaultGuardCooldown
	}
	return &Guard{cooldown: cooldown, now: time.Now}
}

// Allow reports whether the action may run now; when it returns true the
// guard arms itself for one cooldown window.
func (g *Guard) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Before(g.armedUntil) {
		return false
	}
	g.armedUntil = now.Add(g.cooldown)
	return true
}

// Trigger runs fn if the guard allows it and reports whether fn ran.
// While suppressed, fn is not invoked and no state changes.
func (g *Guard) Trigger(fn func()) bool {
	if !g.Allow() {
		return false
	}
	fn()
	return true
}

// Suppressed reports whether a trigger right now would be rejected,
// without arming the guard.
func (g *Guard) Suppressed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now().Before(g.armedUntil)
}

// Release clears the cooldown early. Used when an armed action aborts before
// doing anything the guard needs to protect against repeating.
func (g *Guard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armedUntil = time.Time{}
}

// GuardRegistry hands out one Guard per logical action site, keyed by the
// caller (e.g. "complete:<questID>").
type GuardRegistry struct {
	mu       sync.Mutex
	cooldown time.Duration
	guards   map[string]*Guard
}

func NewGuardRegistry(cooldown time.Duration) *GuardRegistry {
	if cooldown <= 0 {
		cooldown = DefaultGuardCooldown
	}
	return &GuardRegistry{cooldown: cooldown, guards: map[string]*Guard{}}
}

// Get returns the guard for key, creating it on first use.
func (r *GuardRegistry) Get(key string) *Guard {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.guards[key]
	if !ok {
		g = NewGuard(r.cooldown)
		r.guards[key] = g
	}
	return g
}

// Drop forgets the guard for key, e.g. after its entity is deleted.
func (r *GuardRegistry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guards, key)
}
