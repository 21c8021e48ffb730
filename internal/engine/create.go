package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"retroquest/internal/storage"
)

// Shop categories. Unrecognized input falls back to CategoryMisc.
const (
	CategorySnack         = "Snack"
	CategoryEntertainment = "Entertainment"
	CategoryExperience    = "Experience"
	CategoryPersonalCare  = "Personal Care"
	CategoryMisc          = "Miscellaneous"
)

// Categories lists the fixed shop category set.
func Categories() []string {
	return []string{CategorySnack, CategoryEntertainment, CategoryExperience, CategoryPersonalCare, CategoryMisc}
}

// NormalizeCategory maps free-form category input onto the fixed set.
func NormalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	for _, known := range Categories() {
		if strings.EqualFold(c, known) {
			return known
		}
	}
	return CategoryMisc
}

// QuestInput is the creation/update form for a quest. Rewards are validated
// against the profile's current level caps.
type QuestInput struct {
	Title         string
	Description   string
	XPReward      int
	CoinReward    int
	Deadline      string // "2006-01-02", optional
	Tags          []string
	TimerDuration int // minutes; 0 means no timer

	// AllowDuplicate skips the duplicate-title check, e.g. after the user
	// confirmed a template or generator suggestion they already have.
	AllowDuplicate bool
}

// ItemInput is the creation/update form for a shop item.
type ItemInput struct {
	Title       string
	Description string
	Cost        int
	Category    string
	Visible     bool
}

// AddQuest validates the form at the current level and creates an active
// quest. Quests created with a timer start idle with the full duration.
func (s *Service) AddQuest(ctx context.Context, in QuestInput) (*storage.Quest, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validateQuestForm(in, p.Level); verr != nil {
		return nil, verr
	}

	title := strings.TrimSpace(in.Title)
	if !in.AllowDuplicate {
		dup, err := s.questTitleExists(ctx, title, "")
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, DuplicateTitleError{Kind: "quest", Title: title}
		}
	}

	now := s.now().UTC()
	q := &storage.Quest{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		XPReward:    in.XPReward,
		CoinReward:  in.CoinReward,
		Tags:        normalizeTags(in.Tags),
		Status:      storage.StatusActive,
		CreatedAt:   now,
	}
	if in.Deadline != "" {
		d, err := time.Parse(DeadlineLayout, in.Deadline)
		if err == nil {
			q.Deadline = &d
		}
	}
	if in.TimerDuration > 0 {
		t := Timer{Duration: in.TimerDuration}
		t.Reset()
		t.ApplyTo(q)
	}

	if err := s.quests.Insert(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("quest added", "id", q.ID, "title", q.Title, "xp", q.XPReward, "coins", q.CoinReward)
	return q, nil
}

// UpdateQuest rewrites an existing quest's form fields. Status, timestamps,
// and timer progress are untouched; changing the timer duration resets the
// countdown.
func (s *Service) UpdateQuest(ctx context.Context, id string, in QuestInput) (*storage.Quest, error) {
	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}

	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validateQuestForm(in, p.Level); verr != nil {
		return nil, verr
	}

	title := strings.TrimSpace(in.Title)
	if !in.AllowDuplicate {
		dup, err := s.questTitleExists(ctx, title, q.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, DuplicateTitleError{Kind: "quest", Title: title}
		}
	}

	q.Title = title
	q.Description = strings.TrimSpace(in.Description)
	q.XPReward = in.XPReward
	q.CoinReward = in.CoinReward
	q.Tags = normalizeTags(in.Tags)
	q.Deadline = nil
	if in.Deadline != "" {
		if d, err := time.Parse(DeadlineLayout, in.Deadline); err == nil {
			q.Deadline = &d
		}
	}

	oldDuration := 0
	if q.TimerDuration != nil {
		oldDuration = *q.TimerDuration
	}
	if in.TimerDuration != oldDuration {
		if in.TimerDuration > 0 {
			t := Timer{Duration: in.TimerDuration}
			t.Reset()
			t.ApplyTo(q)
		} else {
			q.TimerDuration = nil
			q.TimerRemaining = nil
			q.TimerRunning = false
			q.TimerLastUpdate = nil
		}
	}

	if err := s.quests.Update(ctx, s.db, q); err != nil {
		return nil, err
	}
	return q, nil
}

// DeleteQuest removes a quest permanently.
func (s *Service) DeleteQuest(ctx context.Context, id string) error {
	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return err
	}
	if q == nil {
		return NotFoundError{Kind: "quest", ID: id}
	}
	if err := s.quests.Delete(ctx, id); err != nil {
		return err
	}
	s.guards.Drop("complete:" + id)
	return nil
}

// AddItem validates the form and creates a shop item, visible by default.
func (s *Service) AddItem(ctx context.Context, in ItemInput) (*storage.ShopItem, error) {
	if verr := validateItemForm(in); verr != nil {
		return nil, verr
	}

	it := &storage.ShopItem{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Cost:        in.Cost,
		Category:    NormalizeCategory(in.Category),
		Visible:     in.Visible,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.items.Insert(ctx, it); err != nil {
		return nil, err
	}
	s.log.Info("shop item added", "id", it.ID, "title", it.Title, "cost", it.Cost)
	return it, nil
}

// UpdateItem rewrites an existing shop item's form fields.
func (s *Service) UpdateItem(ctx context.Context, id string, in ItemInput) (*storage.ShopItem, error) {
	it, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, NotFoundError{Kind: "shop item", ID: id}
	}
	if verr := validateItemForm(in); verr != nil {
		return nil, verr
	}

	it.Title = strings.TrimSpace(in.Title)
	it.Description = strings.TrimSpace(in.Description)
	it.Cost = in.Cost
	it.Category = NormalizeCategory(in.Category)
	it.Visible = in.Visible

	if err := s.items.Update(ctx, s.db, it); err != nil {
		return nil, err
	}
	return it, nil
}

// SetItemVisibility toggles whether an item shows in the shop.
func (s *Service) SetItemVisibility(ctx context.Context, id string, visible bool) (*storage.ShopItem, error) {
	it, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, NotFoundError{Kind: "shop item", ID: id}
	}
	it.Visible = visible
	if err := s.items.Update(ctx, s.db, it); err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteItem removes a shop item. Purchase history keeps its snapshots.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	it, err := s.items.Get(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return NotFoundError{Kind: "shop item", ID: id}
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.guards.Drop("buy:" + id)
	return nil
}

// questTitleExists checks for another quest with the same trimmed,
// case-insensitive title. Title equality is a knowingly loose dedup key; it
// mirrors how template and generator suggestions are screened.
func (s *Service) questTitleExists(ctx context.Context, title, excludeID string) (bool, error) {
	all, err := s.quests.ListAll(ctx)
	if err != nil {
		return false, err
	}
	for i := range all {
		if all[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(all[i].Title), title) {
			return true, nil
		}
	}
	return false, nil
}

// normalizeTags trims, dedupes, and sorts tags so display order is
// deterministic.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
