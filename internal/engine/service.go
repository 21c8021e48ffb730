package engine

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"retroquest/internal/storage"
)

// Service orchestrates the progression loop over the storage repos. It holds
// no entity state of its own: every operation loads, mutates, persists, and
// returns fresh snapshots for the caller to render.
type Service struct {
	db        *sql.DB
	profiles  *storage.ProfileRepo
	quests    *storage.QuestRepo
	items     *storage.ItemRepo
	purchases *storage.PurchaseRepo
	guards    *GuardRegistry
	log       *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithGuardCooldown overrides the debounce window for all action guards.
func WithGuardCooldown(d time.Duration) Option {
	return func(s *Service) { s.guards = NewGuardRegistry(d) }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		profiles:  storage.NewProfileRepo(db),
		quests:    storage.NewQuestRepo(db),
		items:     storage.NewItemRepo(db),
		purchases: storage.NewPurchaseRepo(db),
		guards:    NewGuardRegistry(DefaultGuardCooldown),
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ProfileRepo() *storage.ProfileRepo   { return s.profiles }
func (s *Service) QuestRepo() *storage.QuestRepo       { return s.quests }
func (s *Service) ItemRepo() *storage.ItemRepo         { return s.items }
func (s *Service) PurchaseRepo() *storage.PurchaseRepo { return s.purchases }

// getProfile loads the singleton profile and repairs its cached level. Level
// is never trusted from storage: profiles persisted under an older curve are
// recomputed from XP here.
func (s *Service) getProfile(ctx context.Context) (*storage.Profile, error) {
	p, err := s.profiles.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	computed := LevelForXP(p.XP)
	if p.Level != computed {
		p.Level = computed
		if err := s.profiles.Update(ctx, s.db, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Profile returns the current profile snapshot with a repaired level.
func (s *Service) Profile(ctx context.Context) (*storage.Profile, error) {
	return s.getProfile(ctx)
}

// UpdateProfileCosmetics sets the opaque display fields.
func (s *Service) UpdateProfileCosmetics(ctx context.Context, displayName, class, avatar string) (*storage.Profile, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	if class != "" {
		p.Class = class
	}
	if avatar != "" {
		p.Avatar = avatar
	}
	if err := s.profiles.Update(ctx, s.db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PurchaseHistory returns the newest-first purchase log.
func (s *Service) PurchaseHistory(ctx context.Context, limit int) ([]storage.Purchase, error) {
	return s.purchases.ListRecent(ctx, limit)
}

// WipeAll clears every table, returning the session to first-use defaults.
func (s *Service) WipeAll(ctx context.Context) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM purchases`,
			`DELETE FROM shop_items`,
			`DELETE FROM quests`,
			`DELETE FROM profile`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
