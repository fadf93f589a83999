package core

import (
	"testing"
	"time"
)

func TestDayWindow(t *testing.T) {
	d := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)
	w := DayWindow(d)

	if w.Kind != WindowDay {
		t.Fatalf("kind = %q, want day", w.Kind)
	}
	wantStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Errorf("end = %v, want next midnight", w.End)
	}
	if !w.Contains(d) {
		t.Error("window should contain its own date")
	}
	if w.Contains(w.End) {
		t.Error("window must be half-open: end excluded")
	}
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(2025, time.December)

	if !w.Start.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("start = %v", w.Start)
	}
	// Year rollover
	if !w.End.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("end = %v, want 2026-01-01", w.End)
	}

	inside := time.Date(2025, 12, 31, 23, 59, 59, 0, time.Local)
	if !w.Contains(inside) {
		t.Error("last second of month should be inside")
	}
	if w.Contains(w.End) {
		t.Error("first of next month must be excluded")
	}
}
