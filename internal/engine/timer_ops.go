package engine

import (
	"context"
	"fmt"
	"time"

	"retroquest/internal/storage"
)

// TimerEvent is the outcome of a timer mutation. Completion is non-nil when
// the timer expired and the quest auto-completed.
type TimerEvent struct {
	Quest      *storage.Quest
	Phase      TimerPhase
	Expired    bool
	Completion *CompleteResult
}

// StartTimer starts (or resumes) the countdown on an active quest.
func (s *Service) StartTimer(ctx context.Context, id string) (*TimerEvent, error) {
	q, t, err := s.questTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Start(s.now().UTC()); err != nil {
		return nil, err
	}
	return s.persistTimer(ctx, q, t, false)
}

// PauseTimer freezes a running countdown.
func (s *Service) PauseTimer(ctx context.Context, id string) (*TimerEvent, error) {
	q, t, err := s.questTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Pause(s.now().UTC()); err != nil {
		return nil, err
	}
	return s.persistTimer(ctx, q, t, false)
}

// ResetTimer returns the countdown to idle with the full duration.
func (s *Service) ResetTimer(ctx context.Context, id string) (*TimerEvent, error) {
	q, t, err := s.questTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Reset()
	return s.persistTimer(ctx, q, t, false)
}

// TickTimer consumes one elapsed second of a running countdown. On expiry
// the quest auto-completes through the normal reward path (no guard, no cap
// prompt: expiry is not a user re-trigger and there is nobody to ask).
func (s *Service) TickTimer(ctx context.Context, id string) (*TimerEvent, error) {
	q, t, err := s.questTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	expired := t.Tick(s.now().UTC())
	return s.persistTimer(ctx, q, t, expired)
}

// ReconcileTimers corrects every persisted running timer for wall-clock time
// that passed while the app was closed. Timers driven to zero expire and
// auto-complete their quests. Call once on load, before rendering.
func (s *Service) ReconcileTimers(ctx context.Context, now time.Time) ([]TimerEvent, error) {
	quests, err := s.quests.ListByStatus(ctx, storage.StatusActive)
	if err != nil {
		return nil, err
	}

	var events []TimerEvent
	for i := range quests {
		q := quests[i]
		t := TimerFromQuest(&q)
		if t == nil || !t.Running {
			continue
		}
		expired := t.Reconcile(now)
		ev, err := s.persistTimer(ctx, &q, t, expired)
		if err != nil {
			return events, err
		}
		if expired {
			s.log.Info("timer expired while away", "quest", q.ID, "title", q.Title)
		}
		events = append(events, *ev)
	}
	return events, nil
}

func (s *Service) questTimer(ctx context.Context, id string) (*storage.Quest, *Timer, error) {
	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, NotFoundError{Kind: "quest", ID: id}
	}
	if q.Status != storage.StatusActive {
		return nil, nil, fmt.Errorf("quest %s is %s; timers only run on active quests", id, q.Status)
	}
	t := TimerFromQuest(q)
	if t == nil {
		return nil, nil, fmt.Errorf("quest %s has no timer", id)
	}
	return q, t, nil
}

// persistTimer writes the timer snapshot back onto the quest. When the timer
// expired, the completion (which persists quest and profile together)
// subsumes the write.
func (s *Service) persistTimer(ctx context.Context, q *storage.Quest, t *Timer, expired bool) (*TimerEvent, error) {
	t.ApplyTo(q)

	if expired {
		p, err := s.getProfile(ctx)
		if err != nil {
			return nil, err
		}
		res, err := s.applyCompletion(ctx, q, p)
		if err != nil {
			return nil, err
		}
		return &TimerEvent{Quest: res.Quest, Phase: TimerExpired, Expired: true, Completion: res}, nil
	}

	if err := s.quests.Update(ctx, s.db, q); err != nil {
		return nil, err
	}
	return &TimerEvent{Quest: q, Phase: t.Phase()}, nil
}
