package engine

import (
	"context"
	"strings"
)

// Suggestion is a quest- or item-shaped proposal from a generator (built-in
// templates here; an AI backend would satisfy the same interface). Suggestion
// rewards are not pre-validated against caps: they go through the normal
// add-quest/add-item validation only when the user accepts one.
type Suggestion struct {
	Name  string
	Quest *QuestInput
	Item  *ItemInput
}

// GeneratorContext is the progression snapshot handed to a generator so it
// can size rewards to the user.
type GeneratorContext struct {
	Level         int
	MaxQuestXP    int
	MaxQuestCoins int
	Coins         int
}

// Generator proposes quests and shop items for a free-text prompt.
type Generator interface {
	Suggest(ctx context.Context, prompt string, gctx GeneratorContext) ([]Suggestion, error)
}

// GeneratorContext builds the context for the current profile.
func (s *Service) GeneratorContext(ctx context.Context) (GeneratorContext, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return GeneratorContext{}, err
	}
	return GeneratorContext{
		Level:         p.Level,
		MaxQuestXP:    MaxQuestXP(p.Level),
		MaxQuestCoins: MaxQuestCoins(p.Level),
		Coins:         p.Coins,
	}, nil
}

// TemplateGenerator serves the built-in templates, filtered by a naive
// keyword match on the prompt. Empty prompt returns everything.
type TemplateGenerator struct{}

func (TemplateGenerator) Suggest(_ context.Context, prompt string, _ GeneratorContext) ([]Suggestion, error) {
	all := BuiltInSuggestions()
	prompt = strings.ToLower(strings.TrimSpace(prompt))
	if prompt == "" {
		return all, nil
	}

	var out []Suggestion
	for _, s := range all {
		hay := strings.ToLower(s.Name)
		if s.Quest != nil {
			hay += " " + strings.ToLower(s.Quest.Title+" "+s.Quest.Description+" "+strings.Join(s.Quest.Tags, " "))
		}
		if s.Item != nil {
			hay += " " + strings.ToLower(s.Item.Title+" "+s.Item.Description+" "+s.Item.Category)
		}
		for _, word := range strings.Fields(prompt) {
			if strings.Contains(hay, word) {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

// BuiltInSuggestions returns the stock quest and shop templates.
func BuiltInSuggestions() []Suggestion {
	return []Suggestion{
		{
			Name: "Morning Routine",
			Quest: &QuestInput{
				Title:       "Complete Morning Routine",
				Description: "Start your day right! Exercise for 20 minutes, meditate for 10 minutes, and eat a healthy breakfast.",
				XPReward:    25,
				CoinReward:  10,
				Tags:        []string{"health", "daily", "productivity"},
			},
		},
		{
			Name: "Study Session",
			Quest: &QuestInput{
				Title:       "Focused Study Session",
				Description: "Deep work session: Study or practice your target subject for 2 hours with no distractions. Take 5-minute breaks every 25 minutes.",
				XPReward:    40,
				CoinReward:  15,
				Tags:        []string{"learning", "focus", "skill-building"},
			},
		},
		{
			Name: "Personal Project",
			Quest: &QuestInput{
				Title:       "Work on Personal Project",
				Description: "Dedicate time to your creative or skill-building project. Make meaningful progress - complete at least one task or milestone.",
				XPReward:    50,
				CoinReward:  20,
				Tags:        []string{"creativity", "goals", "project"},
			},
		},
		{
			Name: "Pomodoro Focus",
			Quest: &QuestInput{
				Title:         "Pomodoro Focus Session",
				Description:   "Complete a focused 25-minute work session with zero distractions. Stay on task until the timer completes!",
				XPReward:      30,
				CoinReward:    12,
				Tags:          []string{"focus", "productivity", "timed"},
				TimerDuration: 25,
			},
		},
		{
			Name: "Coffee & Pastry",
			Item: &ItemInput{
				Title:       "Coffee & Pastry",
				Description: "Treat yourself to your favorite coffee and a pastry",
				Cost:        50,
				Category:    CategorySnack,
				Visible:     true,
			},
		},
		{
			Name: "Movie Night",
			Item: &ItemInput{
				Title:       "Movie Night",
				Description: "Stream a new movie or go to the theater",
				Cost:        100,
				Category:    CategoryEntertainment,
				Visible:     true,
			},
		},
		{
			Name: "Mini Spa Session",
			Item: &ItemInput{
				Title:       "Mini Spa Session",
				Description: "30-minute massage or facial treatment",
				Cost:        200,
				Category:    CategoryPersonalCare,
				Visible:     true,
			},
		},
	}
}

// FindSuggestion looks up a built-in suggestion by (case-insensitive) name.
func FindSuggestion(name string) *Suggestion {
	for _, s := range BuiltInSuggestions() {
		if strings.EqualFold(s.Name, name) {
			out := s
			return &out
		}
	}
	return nil
}
