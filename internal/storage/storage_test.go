package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))
}

func TestProfileGetOrCreateMain(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepo(db)

	missing, err := repo.Get(ctx, MainProfileKey)
	require.NoError(t, err)
	require.Nil(t, missing)

	p, err := repo.GetOrCreateMain(ctx)
	require.NoError(t, err)
	require.Equal(t, MainProfileKey, p.Key)
	require.Equal(t, "Adventurer", p.DisplayName)
	require.Equal(t, "Warrior", p.Class)
	require.Equal(t, "⚔️", p.Avatar)
	require.Equal(t, 1, p.Level)
	require.Zero(t, p.XP)
	require.Zero(t, p.Coins)

	p.XP = 150
	p.Coins = 75
	p.DisplayName = "Rogue One"
	require.NoError(t, repo.Update(ctx, db, p))

	again, err := repo.GetOrCreateMain(ctx)
	require.NoError(t, err)
	require.Equal(t, 150, again.XP)
	require.Equal(t, 75, again.Coins)
	require.Equal(t, "Rogue One", again.DisplayName)
}

func TestQuestRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestRepo(db)

	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	duration := 25
	remaining := 600
	lastUpdate := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	q := &Quest{
		ID:          "q-1",
		Title:       "Morning Routine",
		Description: "Stretch and hydrate",
		XPReward:    25,
		CoinReward:  10,
		Deadline:    &deadline,
		Tags:        []string{"daily", "health"},
		Status:      StatusActive,
		CreatedAt:   time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),

		TimerDuration:   &duration,
		TimerRemaining:  &remaining,
		TimerRunning:    true,
		TimerLastUpdate: &lastUpdate,
	}
	require.NoError(t, repo.Insert(ctx, q))

	got, err := repo.Get(ctx, "q-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, q.Title, got.Title)
	require.Equal(t, q.Tags, got.Tags)
	require.Equal(t, StatusActive, got.Status)
	require.True(t, got.TimerRunning)
	require.NotNil(t, got.TimerRemaining)
	require.Equal(t, 600, *got.TimerRemaining)
	require.NotNil(t, got.Deadline)
	require.True(t, got.Deadline.Equal(deadline))

	completed := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
	got.Status = StatusCompleted
	got.CompletedAt = &completed
	got.TimerRunning = false
	require.NoError(t, repo.Update(ctx, db, got))

	back, err := repo.Get(ctx, "q-1")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, back.Status)
	require.NotNil(t, back.CompletedAt)
	require.False(t, back.TimerRunning)
}

func TestQuestGetMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	q, err := NewQuestRepo(db).Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, q)
}

func TestQuestListByStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestRepo(db)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	for i, st := range []string{StatusActive, StatusActive, StatusCompleted, StatusArchived} {
		q := &Quest{
			ID:        string(rune('a' + i)),
			Title:     "Quest " + string(rune('A'+i)),
			Status:    st,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Insert(ctx, q))
	}

	active, err := repo.ListByStatus(ctx, StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Creation order is preserved.
	require.Equal(t, "a", active[0].ID)
	require.Equal(t, "b", active[1].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestQuestNilTagsStaysNil(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewQuestRepo(db)

	require.NoError(t, repo.Insert(ctx, &Quest{ID: "bare", Title: "Bare", Status: StatusActive, CreatedAt: time.Now().UTC()}))
	got, err := repo.Get(ctx, "bare")
	require.NoError(t, err)
	require.Nil(t, got.Tags)
	require.Nil(t, got.TimerDuration)
	require.False(t, got.HasTimer())
}

func TestItemRoundTripAndVisibility(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewItemRepo(db)

	now := time.Now().UTC()
	require.NoError(t, repo.Insert(ctx, &ShopItem{ID: "i-1", Title: "Coffee & Pastry", Description: "Treat", Cost: 50, Category: "Snack", Visible: true, CreatedAt: now}))
	require.NoError(t, repo.Insert(ctx, &ShopItem{ID: "i-2", Title: "Secret", Description: "Hidden", Cost: 10, Category: "Miscellaneous", Visible: false, CreatedAt: now.Add(time.Second)}))

	visible, err := repo.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, "i-1", visible[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	it := &all[1]
	it.Visible = true
	it.Cost = 15
	require.NoError(t, repo.Update(ctx, db, it))

	visible, err = repo.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 2)

	require.NoError(t, repo.Delete(ctx, "i-1"))
	got, err := repo.Get(ctx, "i-1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPurchasesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPurchaseRepo(db)

	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"Coffee & Pastry", "Movie Night", "Mini Spa Session"} {
		_, err := repo.Insert(ctx, db, title, (i+1)*50, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	hist, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	require.Equal(t, "Mini Spa Session", hist[0].Title)
	require.Equal(t, "Coffee & Pastry", hist[2].Title)

	limited, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, "Mini Spa Session", limited[0].Title)
}

func TestPurchasesSameInstantOrderByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPurchaseRepo(db)

	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	first, err := repo.Insert(ctx, db, "First", 10, at)
	require.NoError(t, err)
	second, err := repo.Insert(ctx, db, "Second", 10, at)
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	hist, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "Second", hist[0].Title)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepo(db)

	p, err := repo.GetOrCreateMain(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		p.Coins = 999
		if err := repo.Update(ctx, tx, p); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	back, err := repo.Get(ctx, MainProfileKey)
	require.NoError(t, err)
	require.Zero(t, back.Coins)
}
