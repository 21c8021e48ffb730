package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			display_name TEXT NOT NULL DEFAULT 'Adventurer',
			class TEXT NOT NULL DEFAULT 'Warrior',
			avatar TEXT NOT NULL DEFAULT '⚔️',
			level INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			quests_completed INTEGER NOT NULL DEFAULT 0,
			total_xp_gained INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			xp_reward INTEGER NOT NULL DEFAULT 0,
			coin_reward INTEGER NOT NULL DEFAULT 0,
			deadline DATETIME,
			tags TEXT,

			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME,

			timer_duration INTEGER,
			timer_remaining INTEGER,
			timer_running INTEGER NOT NULL DEFAULT 0,
			timer_last_update DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS shop_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cost INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'Miscellaneous',
			visible INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		// Append-only; read newest-first.
		`CREATE TABLE IF NOT EXISTS purchases (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			cost INTEGER NOT NULL,
			purchased_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status);`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_purchased_at ON purchases(purchased_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
