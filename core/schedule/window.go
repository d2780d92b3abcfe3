package schedule

import "time"

// Window is a closed time range. A zero bound is open.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayBounds is the window covering ref's calendar day.
func DayBounds(ref time.Time) Window {
	return Window{Start: StartOfDay(ref), End: EndOfDay(ref)}
}

// MonthBounds is the window from the first to the last day of ref's month.
func MonthBounds(ref time.Time) Window {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location())
	return Window{Start: first, End: EndOfDay(last)}
}

// Split is the result of a window query: the occurrences of the reference day and
// the full ordered set.
type Split[E any] struct {
	Today   []Occurrence[E]
	Monthly []Occurrence[E]
}

// MonthOf expands events over the month containing ref and splits out ref's day.
func MonthOf[E Schedulable](events []E, ref time.Time) Split[E] {
	all := ExpandAll(events, MonthBounds(ref))
	return Split[E]{
		Today:   OnDay(all, ref),
		Monthly: all,
	}
}

// OnDay keeps the occurrences that start on ref's calendar day.
func OnDay[E any](occs []Occurrence[E], ref time.Time) []Occurrence[E] {
	day := DayBounds(ref)
	out := make([]Occurrence[E], 0)
	for _, o := range occs {
		if day.Contains(o.Start) {
			out = append(out, o)
		}
	}
	return out
}
