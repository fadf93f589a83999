package core

import "time"

type WindowKind string

const (
	WindowDay   WindowKind = "day"
	WindowMonth WindowKind = "month"
)

// Window is a half-open [Start, End) interval over which transactions are
// aggregated. Day windows are machine-local midnight to midnight; month
// windows span the calendar month in local naive time.
type Window struct {
	Kind  WindowKind
	Start time.Time
	End   time.Time
}

// DayWindow returns the local midnight-to-midnight window containing date.
func DayWindow(date time.Time) Window {
	local := date.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return Window{Kind: WindowDay, Start: start, End: start.AddDate(0, 0, 1)}
}

// MonthWindow returns [first-of-month 00:00, first-of-next-month 00:00).
func MonthWindow(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return Window{Kind: WindowMonth, Start: start, End: start.AddDate(0, 1, 0)}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	t = t.In(time.Local)
	return !t.Before(w.Start) && t.Before(w.End)
}
