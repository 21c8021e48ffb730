package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type QuestRepo struct {
	db *sql.DB
}

func NewQuestRepo(db *sql.DB) *QuestRepo {
	return &QuestRepo{db: db}
}

const questColumns = `id, title, description, xp_reward, coin_reward, deadline, tags,
	status, created_at, completed_at,
	timer_duration, timer_remaining, timer_running, timer_last_update`

func (r *QuestRepo) Insert(ctx context.Context, q *Quest) error {
	tagsJSON, err := marshalTags(q.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quests (`+questColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Title, q.Description, q.XPReward, q.CoinReward, q.Deadline, tagsJSON,
		q.Status, q.CreatedAt, q.CompletedAt,
		q.TimerDuration, q.TimerRemaining, boolToInt(q.TimerRunning), q.TimerLastUpdate)
	if err != nil {
		return fmt.Errorf("quest insert: %w", err)
	}
	return nil
}

func (r *QuestRepo) Get(ctx context.Context, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	q, err := scanQuest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest get: %w", err)
	}
	return q, nil
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	return r.list(ctx, `SELECT `+questColumns+` FROM quests ORDER BY created_at ASC, id ASC`)
}

func (r *QuestRepo) ListByStatus(ctx context.Context, status string) ([]Quest, error) {
	return r.list(ctx, `SELECT `+questColumns+` FROM quests WHERE status = ? ORDER BY created_at ASC, id ASC`, status)
}

func (r *QuestRepo) list(ctx context.Context, query string, args ...any) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest list rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) Update(ctx context.Context, ex DBTX, q *Quest) error {
	tagsJSON, err := marshalTags(q.Tags)
	if err != nil {
		return err
	}

	_, err = ex.ExecContext(ctx, `
		UPDATE quests
		SET title = ?, description = ?, xp_reward = ?, coin_reward = ?, deadline = ?, tags = ?,
			status = ?, completed_at = ?,
			timer_duration = ?, timer_remaining = ?, timer_running = ?, timer_last_update = ?
		WHERE id = ?
	`, q.Title, q.Description, q.XPReward, q.CoinReward, q.Deadline, tagsJSON,
		q.Status, q.CompletedAt,
		q.TimerDuration, q.TimerRemaining, boolToInt(q.TimerRunning), q.TimerLastUpdate, q.ID)
	if err != nil {
		return fmt.Errorf("quest update: %w", err)
	}
	return nil
}

func (r *QuestRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quests WHERE id = ?`, id); err != nil {
		return fmt.Errorf("quest delete: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuest(row rowScanner) (*Quest, error) {
	var (
		q        Quest
		tagsJSON sql.NullString
		running  int
	)
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.XPReward, &q.CoinReward, &q.Deadline, &tagsJSON,
		&q.Status, &q.CreatedAt, &q.CompletedAt,
		&q.TimerDuration, &q.TimerRemaining, &running, &q.TimerLastUpdate)
	if err != nil {
		return nil, err
	}
	q.TimerRunning = running != 0

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &q.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	return &q, nil
}

func marshalTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	s := string(data)
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
