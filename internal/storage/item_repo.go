package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemColumns = `id, title, description, cost, category, visible, created_at`

func (r *ItemRepo) Insert(ctx context.Context, it *ShopItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shop_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, it.ID, it.Title, it.Description, it.Cost, it.Category, boolToInt(it.Visible), it.CreatedAt)
	if err != nil {
		return fmt.Errorf("item insert: %w", err)
	}
	return nil
}

func (r *ItemRepo) Get(ctx context.Context, id string) (*ShopItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM shop_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("item get: %w", err)
	}
	return it, nil
}

func (r *ItemRepo) ListAll(ctx context.Context) ([]ShopItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM shop_items ORDER BY created_at ASC, id ASC`)
}

func (r *ItemRepo) ListVisible(ctx context.Context) ([]ShopItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM shop_items WHERE visible = 1 ORDER BY created_at ASC, id ASC`)
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]ShopItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("item list: %w", err)
	}
	defer rows.Close()

	var out []ShopItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("item scan: %w", err)
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item list rows: %w", err)
	}
	return out, nil
}

func (r *ItemRepo) Update(ctx context.Context, ex DBTX, it *ShopItem) error {
	_, err := ex.ExecContext(ctx, `
		UPDATE shop_items
		SET title = ?, description = ?, cost = ?, category = ?, visible = ?
		WHERE id = ?
	`, it.Title, it.Description, it.Cost, it.Category, boolToInt(it.Visible), it.ID)
	if err != nil {
		return fmt.Errorf("item update: %w", err)
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shop_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("item delete: %w", err)
	}
	return nil
}

func scanItem(row rowScanner) (*ShopItem, error) {
	var (
		it      ShopItem
		visible int
	)
	err := row.Scan(&it.ID, &it.Title, &it.Description, &it.Cost, &it.Category, &visible, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	it.Visible = visible != 0
	return &it, nil
}
