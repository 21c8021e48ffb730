package engine

import (
	"context"
	"database/sql"
	"fmt"

	"retroquest/internal/storage"
)

// PurchaseResult is the outcome of a shop purchase. The item itself is
// untouched; items are repeatable rewards, not consumables.
type PurchaseResult struct {
	Profile *storage.Profile
	Record  *storage.Purchase
}

// PurchaseItem debits the item's cost and prepends a purchase record.
// Rejected with ErrInsufficientFunds (and no state change) when coins fall
// short, even when the UI already disabled the control.
func (s *Service) PurchaseItem(ctx context.Context, id string) (*PurchaseResult, error) {
	guard := s.guards.Get("buy:" + id)
	if !guard.Allow() {
		s.log.Debug("purchase suppressed by guard", "item", id)
		return nil, ErrGuardSuppressed
	}

	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}

	it, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, NotFoundError{Kind: "shop item", ID: id}
	}

	if p.Coins < it.Cost {
		guard.Release()
		return nil, fmt.Errorf("%w: %q costs %d, you have %d", ErrInsufficientFunds, it.Title, it.Cost, p.Coins)
	}

	p.Coins -= it.Cost
	now := s.now().UTC()

	var record *storage.Purchase
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.profiles.Update(ctx, tx, p); err != nil {
			return err
		}
		record, err = s.purchases.Insert(ctx, tx, it.Title, it.Cost, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("item purchased", "item", it.ID, "title", it.Title, "cost", it.Cost, "coins_left", p.Coins)
	return &PurchaseResult{Profile: p, Record: record}, nil
}
