package engine

import (
	"context"
	"testing"
)

func TestBuiltInSuggestionsValidAtLevelOne(t *testing.T) {
	// Every stock template must be creatable by a fresh level 1 profile.
	for _, s := range BuiltInSuggestions() {
		if s.Quest != nil {
			if verr := validateQuestForm(*s.Quest, 1); verr != nil {
				t.Errorf("template %q invalid at level 1: %v", s.Name, verr)
			}
		}
		if s.Item != nil {
			if verr := validateItemForm(*s.Item); verr != nil {
				t.Errorf("template %q invalid: %v", s.Name, verr)
			}
		}
	}
}

func TestFindSuggestion(t *testing.T) {
	s := FindSuggestion("pomodoro focus")
	if s == nil || s.Quest == nil {
		t.Fatal("pomodoro template not found")
	}
	if s.Quest.TimerDuration != 25 {
		t.Fatalf("pomodoro timer = %d, want 25", s.Quest.TimerDuration)
	}
	if FindSuggestion("no such template") != nil {
		t.Fatal("unknown name should return nil")
	}
}

func TestTemplateGeneratorFiltersByPrompt(t *testing.T) {
	var g TemplateGenerator
	ctx := context.Background()

	all, err := g.Suggest(ctx, "", GeneratorContext{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(all) != len(BuiltInSuggestions()) {
		t.Fatalf("empty prompt returned %d of %d templates", len(all), len(BuiltInSuggestions()))
	}

	got, err := g.Suggest(ctx, "coffee", GeneratorContext{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Coffee & Pastry" {
		t.Fatalf("coffee prompt = %+v", got)
	}

	got, _ = g.Suggest(ctx, "focus", GeneratorContext{})
	if len(got) < 2 {
		t.Fatalf("focus prompt should match multiple templates, got %+v", got)
	}
}

func TestGeneratorContextTracksLevel(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	gctx, err := s.GeneratorContext(ctx)
	if err != nil {
		t.Fatalf("generator context: %v", err)
	}
	if gctx.Level != 1 || gctx.MaxQuestXP != 50 || gctx.MaxQuestCoins != 20 {
		t.Fatalf("context = %+v", gctx)
	}
}
