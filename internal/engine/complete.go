package engine

import (
	"context"
	"database/sql"
	"fmt"

	"retroquest/internal/storage"
)

// ConfirmFunc asks the user to confirm proceeding past an advisory cap
// breach. Returning false aborts the operation with no state change.
type ConfirmFunc func(CapCheck) bool

// CompleteResult is the outcome of a quest completion: fresh snapshots for
// re-rendering plus the level crossing, if any.
type CompleteResult struct {
	Quest        *storage.Quest
	Profile      *storage.Profile
	XPAwarded    int
	CoinsAwarded int
	LevelBefore  int
	LevelAfter   int
	LevelUp      bool
}

// CompleteQuest applies an active quest's rewards exactly once.
//
// The flow is: debounce guard → global-cap check (confirm-or-abort on
// breach) → atomic mutation of quest status and profile counters → level-up
// detection on the recomputed curve. A nil confirm declines cap breaches.
func (s *Service) CompleteQuest(ctx context.Context, id string, confirm ConfirmFunc) (*CompleteResult, error) {
	guard := s.guards.Get("complete:" + id)
	if !guard.Allow() {
		s.log.Debug("completion suppressed by guard", "quest", id)
		return nil, ErrGuardSuppressed
	}

	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}

	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if q.Status != storage.StatusActive {
		return nil, fmt.Errorf("quest %s is %s, not active", id, q.Status)
	}

	check := CheckGlobalCap(p.XP, p.Coins, q.XPReward, q.CoinReward, p.Level)
	if check.Exceeds {
		if confirm == nil || !confirm(check) {
			// The guard window only protects applied actions.
			guard.Release()
			return nil, CapDeclinedError{Check: check}
		}
	}

	return s.applyCompletion(ctx, q, p)
}

// applyCompletion is the single reward-application path, shared by manual
// completion and timer expiry. Quest and profile are written in one
// transaction: a completion either fully applies or not at all.
func (s *Service) applyCompletion(ctx context.Context, q *storage.Quest, p *storage.Profile) (*CompleteResult, error) {
	levelBefore := p.Level
	now := s.now().UTC()

	q.Status = storage.StatusCompleted
	q.CompletedAt = &now
	if q.HasTimer() {
		q.TimerRunning = false
		q.TimerLastUpdate = &now
	}

	p.XP += q.XPReward
	p.Coins += q.CoinReward
	p.QuestsCompleted++
	p.TotalXPGained += q.XPReward
	p.Level = LevelForXP(p.XP)

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.quests.Update(ctx, tx, q); err != nil {
			return err
		}
		return s.profiles.Update(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	levelUp := p.Level > levelBefore
	s.log.Info("quest completed",
		"quest", q.ID, "title", q.Title,
		"xp", q.XPReward, "coins", q.CoinReward,
		"level_before", levelBefore, "level_after", p.Level)

	return &CompleteResult{
		Quest:        q,
		Profile:      p,
		XPAwarded:    q.XPReward,
		CoinsAwarded: q.CoinReward,
		LevelBefore:  levelBefore,
		LevelAfter:   p.Level,
		LevelUp:      levelUp,
	}, nil
}

// ArchiveQuest moves an active or completed quest to archived. Pure status
// transition: rewards already applied are never reversed.
func (s *Service) ArchiveQuest(ctx context.Context, id string) (*storage.Quest, error) {
	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if q.Status == storage.StatusArchived {
		return nil, fmt.Errorf("quest %s is already archived", id)
	}

	q.Status = storage.StatusArchived
	if err := s.quests.Update(ctx, s.db, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ReviveQuest returns an archived quest to active. No reward re-application;
// whatever timer state was persisted comes back as-is.
func (s *Service) ReviveQuest(ctx context.Context, id string) (*storage.Quest, error) {
	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if q.Status != storage.StatusArchived {
		return nil, fmt.Errorf("quest %s is %s, not archived", id, q.Status)
	}

	q.Status = storage.StatusActive
	if err := s.quests.Update(ctx, s.db, q); err != nil {
		return nil, err
	}
	return q, nil
}
