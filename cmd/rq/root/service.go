package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"retroquest/internal/config"
	"retroquest/internal/engine"
	"retroquest/internal/logger"
	"retroquest/internal/storage"
	"retroquest/internal/ui"
)

var (
	flagConfig string
	flagDB     string
)

// openService wires config, logging, the database, and the engine. Running
// timers are reconciled against the wall clock before any command sees the
// data; expired ones auto-complete and are reported.
func openService(ctx context.Context, out func(string)) (*engine.Service, func(), error) {
	cfgPath := flagConfig
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	log := logger.Setup(cfg.Log)

	dbPath := flagDB
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		p, err := storage.ResolveDBPath()
		if err != nil {
			return nil, nil, err
		}
		dbPath = p
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = db.Close() }

	svc := engine.NewService(db,
		engine.WithGuardCooldown(time.Duration(cfg.Guard.CooldownMS)*time.Millisecond),
		engine.WithLogger(log),
	)

	events, err := svc.ReconcileTimers(ctx, time.Now().UTC())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if out != nil {
		for _, ev := range events {
			if ev.Expired {
				out(ui.Good.Render(ui.IconTimer+" Timer finished while you were away:") + " " + ev.Quest.Title + " auto-completed")
				if ev.Completion != nil && ev.Completion.LevelUp {
					out(fmt.Sprintf("%s %s You reached level %d!", ui.IconSparkle, ui.BadgeLevelUp, ev.Completion.LevelAfter))
				}
			}
		}
	}

	return svc, cleanup, nil
}

// resolveQuest finds a quest by full ID, unique ID prefix, or exact
// (case-insensitive) title.
func resolveQuest(ctx context.Context, svc *engine.Service, arg string) (*storage.Quest, error) {
	all, err := svc.QuestRepo().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*storage.Quest
	for i := range all {
		q := &all[i]
		switch {
		case q.ID == arg:
			return q, nil
		case len(arg) >= 4 && strings.HasPrefix(q.ID, arg):
			matches = append(matches, q)
		case strings.EqualFold(q.Title, arg):
			matches = append(matches, q)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no quest matches %q", arg)
	default:
		return nil, fmt.Errorf("%q is ambiguous (%d quests match); use a longer ID prefix", arg, len(matches))
	}
}

// resolveItem finds a shop item by full ID, unique ID prefix, or exact
// (case-insensitive) title.
func resolveItem(ctx context.Context, svc *engine.Service, arg string) (*storage.ShopItem, error) {
	all, err := svc.ItemRepo().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*storage.ShopItem
	for i := range all {
		it := &all[i]
		switch {
		case it.ID == arg:
			return it, nil
		case len(arg) >= 4 && strings.HasPrefix(it.ID, arg):
			matches = append(matches, it)
		case strings.EqualFold(it.Title, arg):
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no shop item matches %q", arg)
	default:
		return nil, fmt.Errorf("%q is ambiguous (%d items match); use a longer ID prefix", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
