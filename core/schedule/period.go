package schedule

import "time"

type Period string

const (
	ThisWeek  Period = "this_week"
	ThisMonth Period = "this_month"
	Custom    Period = "custom"
)

func (p Period) Valid() bool {
	switch p {
	case ThisWeek, ThisMonth, Custom:
		return true
	}
	return false
}

// ResolvePeriod turns a named period into a concrete window relative to now.
// Weeks run Sunday to Saturday. A custom end is pushed to the end of its day, the
// custom start is kept as given. Anything unrecognised, including a custom period
// missing one of its bounds, resolves to the current week.
func ResolvePeriod(p Period, start, end *time.Time, now time.Time) Window {
	switch {
	case p == ThisMonth:
		return MonthBounds(now)
	case p == Custom && start != nil && end != nil:
		return Window{Start: *start, End: EndOfDay(*end)}
	default:
		return WeekOf(now)
	}
}

// WeekOf is the Sunday-to-Saturday week containing t.
func WeekOf(t time.Time) Window {
	sunday := time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, t.Location())
	saturday := time.Date(sunday.Year(), sunday.Month(), sunday.Day()+6, 0, 0, 0, 0, t.Location())
	return Window{Start: sunday, End: EndOfDay(saturday)}
}
