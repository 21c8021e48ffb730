package engine

import (
	"fmt"
	"strings"
	"time"
)

const (
	TitleMax     = 50
	QuestDescMax = 300
	ShopDescMax  = 200

	// DeadlineLayout is the calendar-date format accepted for quest deadlines.
	DeadlineLayout = "2006-01-02"
)

// ValidateReward checks a proposed reward pair against the per-quest caps for
// the given level. It returns one human-readable reason per violated rule;
// an empty slice means the reward is valid.
func ValidateReward(xpReward, coinReward, level int) []string {
	var reasons []string

	maxXP := MaxQuestXP(level)
	maxCoins := MaxQuestCoins(level)

	if xpReward > maxXP {
		reasons = append(reasons, fmt.Sprintf("XP reward (%d) exceeds maximum for level %d (%d XP)", xpReward, level, maxXP))
	}
	if coinReward > maxCoins {
		reasons = append(reasons, fmt.Sprintf("coin reward (%d) exceeds maximum for level %d (%d coins)", coinReward, level, maxCoins))
	}
	if xpReward < 0 {
		reasons = append(reasons, "XP reward cannot be negative")
	}
	if coinReward < 0 {
		reasons = append(reasons, "coin reward cannot be negative")
	}
	return reasons
}

// CapCheck is the result of a global-cap projection. It is advisory: callers
// may let the user proceed past an exceeded cap after explicit confirmation.
type CapCheck struct {
	Exceeds   bool
	Dimension string // "xp" or "coins" when Exceeds
	Projected int
	Cap       int
	Message   string
}

// CheckGlobalCap projects adding XP/coins onto the profile and reports
// whether a global cap would be breached. XP is checked first; only one
// dimension is ever reported even if both would breach.
func CheckGlobalCap(currentXP, currentCoins, addXP, addCoins, level int) CapCheck {
	xpCap := GlobalXPCap(level)
	coinCap := GlobalCoinCap(level)

	if newXP := currentXP + addXP; newXP > xpCap {
		return CapCheck{
			Exceeds:   true,
			Dimension: "xp",
			Projected: newXP,
			Cap:       xpCap,
			Message:   fmt.Sprintf("adding %d XP would exceed the global cap (%d XP for level %d)", addXP, xpCap, level),
		}
	}
	if newCoins := currentCoins + addCoins; newCoins > coinCap {
		return CapCheck{
			Exceeds:   true,
			Dimension: "coins",
			Projected: newCoins,
			Cap:       coinCap,
			Message:   fmt.Sprintf("adding %d coins would exceed the global cap (%d coins for level %d)", addCoins, coinCap, level),
		}
	}
	return CapCheck{}
}

func validateQuestForm(in QuestInput, level int) *ValidationError {
	v := newValidationError()

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		v.add("title", "title is required")
	case len(title) > TitleMax:
		v.add("title", fmt.Sprintf("title must be %d characters or less", TitleMax))
	}

	desc := strings.TrimSpace(in.Description)
	switch {
	case desc == "":
		v.add("description", "description is required")
	case len(desc) > QuestDescMax:
		v.add("description", fmt.Sprintf("description must be %d characters or less", QuestDescMax))
	}

	if in.XPReward < 0 {
		v.add("xp", "XP reward must be a non-negative number")
	}
	if in.CoinReward < 0 {
		v.add("coins", "coin reward must be a non-negative number")
	}
	if in.XPReward >= 0 && in.CoinReward >= 0 {
		if reasons := ValidateReward(in.XPReward, in.CoinReward, level); len(reasons) > 0 {
			v.add("rewards", strings.Join(reasons, ". "))
		}
	}

	if in.Deadline != "" {
		if _, err := time.Parse(DeadlineLayout, in.Deadline); err != nil {
			v.add("deadline", fmt.Sprintf("invalid deadline date (want %s)", DeadlineLayout))
		}
	}

	if in.TimerDuration < 0 {
		v.add("timer", "timer duration must be a positive number of minutes")
	}

	return v.orNil()
}

func validateItemForm(in ItemInput) *ValidationError {
	v := newValidationError()

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		v.add("title", "title is required")
	case len(title) > TitleMax:
		v.add("title", fmt.Sprintf("title must be %d characters or less", TitleMax))
	}

	desc := strings.TrimSpace(in.Description)
	switch {
	case desc == "":
		v.add("description", "description is required")
	case len(desc) > ShopDescMax:
		v.add("description", fmt.Sprintf("description must be %d characters or less", ShopDescMax))
	}

	if in.Cost < 0 {
		v.add("cost", "cost must be a non-negative number")
	}

	return v.orNil()
}
