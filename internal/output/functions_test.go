package output

import (
	"errors"
	"strings"
	"testing"
)

func TestProgressBarClamps(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		total   int64
	}{
		{"zero of total", 0, 100},
		{"half", 50, 100},
		{"complete", 100, 100},
		{"overshoot", 150, 100},
		{"negative current", -5, 100},
		{"unknown total", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.current, tt.total, 30)
			if bar == "" {
				t.Error("bar should never be empty")
			}
			if strings.Contains(bar, "-") && tt.current >= 0 {
				t.Errorf("bar rendered a negative percent: %s", bar)
			}
		})
	}
}

func TestProgressBarFillMonotonic(t *testing.T) {
	prev := -1
	for _, current := range []int64{0, 25, 50, 75, 100} {
		bar := ProgressBar(current, 100, 30)
		filled := strings.Count(bar, StyleSymbols["hline"])
		if filled < prev {
			t.Errorf("fill decreased at %d%%: %d < %d", current, filled, prev)
		}
		prev = filled
	}
}

func TestManagerCounts(t *testing.T) {
	m := NewManager()
	a := m.Register("https://youtu.be/A")
	b := m.Register("https://youtu.be/B")
	c := m.Register("https://youtu.be/C")

	m.Complete(a, "")
	m.CompleteWithWarning(b, "partial")
	m.ReportError(c, errors.New("extraction failed"))

	if got := m.Successes(); got != 2 {
		t.Errorf("Successes() = %d, want 2 (warning counts as success)", got)
	}
	if got := m.Failures(); got != 1 {
		t.Errorf("Failures() = %d, want 1", got)
	}
}
