package ui

import (
	"strings"
	"testing"
)

func TestClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{9, "0:09"},
		{60, "1:00"},
		{599, "9:59"},
		{600, "10:00"},
		{1500, "25:00"},
	}
	for _, c := range cases {
		if got := Clock(c.seconds); got != c.want {
			t.Errorf("Clock(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []float64{-10, 0, 33, 100, 250} {
		bar := ProgressBar(pct, 20)
		cells := strings.Count(bar, "█") + strings.Count(bar, "░")
		if cells != 20 {
			t.Errorf("ProgressBar(%f, 20) has %d cells", pct, cells)
		}
	}
	if got := strings.Count(ProgressBar(100, 10), "█"); got != 10 {
		t.Errorf("full bar has %d filled cells, want 10", got)
	}
	if got := strings.Count(ProgressBar(0, 10), "█"); got != 0 {
		t.Errorf("empty bar has %d filled cells, want 0", got)
	}
}
