package engine

import "testing"

func TestLevelBoundaries(t *testing.T) {
	if got := XPForLevel(1); got != 0 {
		t.Fatalf("XPForLevel(1)=%d, want 0", got)
	}
	if got := XPForLevel(2); got != 100 {
		t.Fatalf("XPForLevel(2)=%d, want 100", got)
	}
	if got := XPForLevel(3); got != 250 {
		t.Fatalf("XPForLevel(3)=%d, want 250", got)
	}

	if got := LevelForXP(0); got != 1 {
		t.Fatalf("LevelForXP(0)=%d, want 1", got)
	}
	if got := LevelForXP(-5); got != 1 {
		t.Fatalf("LevelForXP(-5)=%d, want 1", got)
	}
	if got := LevelForXP(99); got != 1 {
		t.Fatalf("LevelForXP(99)=%d, want 1", got)
	}
	if got := LevelForXP(100); got != 2 {
		t.Fatalf("LevelForXP(100)=%d, want 2", got)
	}
	if got := LevelForXP(249); got != 2 {
		t.Fatalf("LevelForXP(249)=%d, want 2", got)
	}
	if got := LevelForXP(250); got != 3 {
		t.Fatalf("LevelForXP(250)=%d, want 3", got)
	}
}

func TestLevelCurveProperties(t *testing.T) {
	prevLevel := 1
	for xp := 0; xp <= 50_000; xp += 7 {
		l := LevelForXP(xp)
		if l < 1 {
			t.Fatalf("LevelForXP(%d)=%d, want >= 1", xp, l)
		}
		if l < prevLevel {
			t.Fatalf("level decreased: LevelForXP(%d)=%d after %d", xp, l, prevLevel)
		}
		prevLevel = l

		if req := XPForLevel(l); req > xp {
			t.Fatalf("XPForLevel(LevelForXP(%d))=%d exceeds xp", xp, req)
		}
		if next := XPForLevel(l + 1); next <= xp {
			t.Fatalf("XPForLevel(%d)=%d should exceed xp %d", l+1, next, xp)
		}
	}

	for l := 1; l < 30; l++ {
		if XPForLevel(l+1) < XPForLevel(l) {
			t.Fatalf("XPForLevel not non-decreasing at level %d", l)
		}
	}
}

func TestLevelForXPMatchesExactThresholds(t *testing.T) {
	// The closed-form inverse must agree with the table at every threshold.
	for l := 2; l <= 25; l++ {
		req := XPForLevel(l)
		if got := LevelForXP(req); got != l {
			t.Fatalf("LevelForXP(XPForLevel(%d)=%d)=%d, want %d", l, req, got, l)
		}
		if got := LevelForXP(req - 1); got != l-1 {
			t.Fatalf("LevelForXP(%d)=%d, want %d", req-1, got, l-1)
		}
	}
}

func TestStatsClamped(t *testing.T) {
	for _, xp := range []int{-10, 0, 1, 50, 99, 100, 101, 249, 250, 9999} {
		st := Stats(xp)
		if st.ProgressPercent < 0 || st.ProgressPercent > 100 {
			t.Fatalf("Stats(%d).ProgressPercent=%f out of [0,100]", xp, st.ProgressPercent)
		}
		if st.XPIntoLevel < 0 {
			t.Fatalf("Stats(%d).XPIntoLevel=%d negative", xp, st.XPIntoLevel)
		}
		if st.Level < 1 {
			t.Fatalf("Stats(%d).Level=%d, want >= 1", xp, st.Level)
		}
	}

	st := Stats(0)
	if st.Level != 1 || st.XPIntoLevel != 0 || st.XPNeededForLevel != 100 {
		t.Fatalf("Stats(0)=%+v, want level 1, 0/100", st)
	}
}

func TestCapsStrictlyIncreasing(t *testing.T) {
	for l := 1; l < 50; l++ {
		if MaxQuestXP(l+1) <= MaxQuestXP(l) {
			t.Fatalf("MaxQuestXP not strictly increasing at %d", l)
		}
		if MaxQuestCoins(l+1) <= MaxQuestCoins(l) {
			t.Fatalf("MaxQuestCoins not strictly increasing at %d", l)
		}
		if GlobalXPCap(l+1) <= GlobalXPCap(l) {
			t.Fatalf("GlobalXPCap not strictly increasing at %d", l)
		}
		if GlobalCoinCap(l+1) <= GlobalCoinCap(l) {
			t.Fatalf("GlobalCoinCap not strictly increasing at %d", l)
		}
	}

	if MaxQuestXP(1) != 50 || MaxQuestCoins(1) != 20 || GlobalXPCap(1) != 1000 || GlobalCoinCap(1) != 500 {
		t.Fatalf("level 1 caps wrong: %d %d %d %d", MaxQuestXP(1), MaxQuestCoins(1), GlobalXPCap(1), GlobalCoinCap(1))
	}
}
