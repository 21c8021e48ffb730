package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainProfileKey = "main_user"

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, display_name, class, avatar, level, xp, coins, quests_completed, total_xp_gained
		FROM profile
		WHERE key = ?
	`, key)

	var p Profile
	err := row.Scan(&p.Key, &p.DisplayName, &p.Class, &p.Avatar, &p.Level, &p.XP, &p.Coins, &p.QuestsCompleted, &p.TotalXPGained)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

// GetOrCreateMain fetches the singleton profile, inserting a zeroed default
// row on first use.
func (r *ProfileRepo) GetOrCreateMain(ctx context.Context) (*Profile, error) {
	p, err := r.Get(ctx, MainProfileKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO profile (key) VALUES (?)`, MainProfileKey); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, MainProfileKey)
}

func (r *ProfileRepo) Update(ctx context.Context, ex DBTX, p *Profile) error {
	_, err := ex.ExecContext(ctx, `
		UPDATE profile
		SET display_name = ?, class = ?, avatar = ?, level = ?, xp = ?, coins = ?, quests_completed = ?, total_xp_gained = ?
		WHERE key = ?
	`, p.DisplayName, p.Class, p.Avatar, p.Level, p.XP, p.Coins, p.QuestsCompleted, p.TotalXPGained, p.Key)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
