package storage

import "time"

// Quest status values.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Profile is the singleton user profile for the local session.
// Level is a display cache; the engine recomputes it from XP on load.
type Profile struct {
	Key             string
	DisplayName     string
	Class           string
	Avatar          string
	Level           int
	XP              int
	Coins           int
	QuestsCompleted int
	TotalXPGained   int
}

// Quest is a user-defined real-world task with rewards and a lifecycle
// status. The Timer* fields are only set for quests created with a timer;
// TimerRemaining never exceeds TimerDuration minutes.
type Quest struct {
	ID          string
	Title       string
	Description string
	XPReward    int
	CoinReward  int
	Deadline    *time.Time
	Tags        []string // stored sorted for deterministic display
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time

	TimerDuration   *int // minutes
	TimerRemaining  *int // seconds
	TimerRunning    bool
	TimerLastUpdate *time.Time
}

// HasTimer reports whether the quest carries a countdown timer.
func (q *Quest) HasTimer() bool {
	return q.TimerDuration != nil && *q.TimerDuration > 0
}

// ShopItem is a repeatable, purchasable real-world reward. Purchasing never
// consumes it.
type ShopItem struct {
	ID          string
	Title       string
	Description string
	Cost        int
	Category    string
	Visible     bool
	CreatedAt   time.Time
}

// Purchase is one entry of the append-only purchase history. Title and cost
// are snapshots; later edits to the item do not rewrite history.
type Purchase struct {
	ID          int64
	Title       string
	Cost        int
	PurchasedAt time.Time
}
