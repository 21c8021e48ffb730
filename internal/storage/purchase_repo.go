package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PurchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

func (r *PurchaseRepo) Insert(ctx context.Context, ex DBTX, title string, cost int, purchasedAt time.Time) (*Purchase, error) {
	res, err := ex.ExecContext(ctx, `
		INSERT INTO purchases (title, cost, purchased_at)
		VALUES (?, ?, ?)
	`, title, cost, purchasedAt)
	if err != nil {
		return nil, fmt.Errorf("purchase insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("purchase last insert id: %w", err)
	}
	return &Purchase{ID: id, Title: title, Cost: cost, PurchasedAt: purchasedAt}, nil
}

// ListRecent returns purchases newest-first. limit <= 0 means no limit.
func (r *PurchaseRepo) ListRecent(ctx context.Context, limit int) ([]Purchase, error) {
	query := `SELECT id, title, cost, purchased_at FROM purchases ORDER BY purchased_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("purchase list: %w", err)
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.Title, &p.Cost, &p.PurchasedAt); err != nil {
			return nil, fmt.Errorf("purchase scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchase list rows: %w", err)
	}
	return out, nil
}
