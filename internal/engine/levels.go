package engine

import "math"

const (
	// LevelBaseXP is the base unit B of the geometric curve.
	LevelBaseXP = 100.0

	// LevelGrowth is the per-level growth ratio R.
	LevelGrowth = 1.5
)

// XPForLevel returns the cumulative XP required to reach the given level.
// Level 1 (and below) requires 0 XP.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	req := LevelBaseXP / (LevelGrowth - 1) * (math.Pow(LevelGrowth, float64(level-1)) - 1)
	return int(math.Floor(req))
}

// LevelForXP returns the highest level L such that XPForLevel(L) <= xp.
// Negative XP clamps to level 1.
func LevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}

	// Closed-form inverse of the curve, then nudge against XPForLevel to
	// absorb floating point error at the exact thresholds.
	l := int(math.Floor(math.Log(float64(xp)*(LevelGrowth-1)/LevelBaseXP+1)/math.Log(LevelGrowth))) + 1
	if l < 1 {
		l = 1
	}
	for XPForLevel(l+1) <= xp {
		l++
	}
	for l > 1 && XPForLevel(l) > xp {
		l--
	}
	return l
}

// LevelStats describes progress within the current level.
type LevelStats struct {
	Level            int
	XPIntoLevel      int
	XPNeededForLevel int
	ProgressPercent  float64
}

// Stats computes the level and within-level progress for a total XP value.
// ProgressPercent is clamped to [0, 100].
func Stats(xp int) LevelStats {
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)
	floor := XPForLevel(level)
	ceil := XPForLevel(level + 1)

	into := xp - floor
	needed := ceil - floor
	pct := 0.0
	if needed > 0 {
		pct = float64(into) / float64(needed) * 100
	}
	pct = math.Min(100, math.Max(0, pct))

	return LevelStats{
		Level:            level,
		XPIntoLevel:      into,
		XPNeededForLevel: needed,
		ProgressPercent:  pct,
	}
}

// MaxQuestXP is the largest XP reward a single quest may carry at a level.
func MaxQuestXP(level int) int {
	return level * 50
}

// MaxQuestCoins is the largest coin reward a single quest may carry at a level.
func MaxQuestCoins(level int) int {
	return level * 20
}

// GlobalXPCap is the soft ceiling on total XP at a level.
func GlobalXPCap(level int) int {
	return level * 1000
}

// GlobalCoinCap is the soft ceiling on total coins at a level.
func GlobalCoinCap(level int) int {
	return level * 500
}
