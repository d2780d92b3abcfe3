package schedule

import (
	"strings"
	"time"
)

// Pattern is how often a recurring event repeats on its repeat days.
type Pattern string

const (
	Weekly        Pattern = "Weekly"
	EveryTwoWeeks Pattern = "Every_Two_Weeks"
)

// MaxRecurrenceYears bounds every recurrence, counted from the anchor date.
const MaxRecurrenceYears = 5

// Rule is the part of an event that decides when it happens.
type Rule struct {
	// StartDate is the anchor: first candidate day and the time of day of every occurrence.
	StartDate   time.Time
	IsRecurring bool
	Pattern     Pattern
	// Days holds weekday abbreviations (Sun..Sat).
	Days []string
	// EndCount caps the number of occurrences ever generated from the anchor.
	EndCount *int
	// EndDate is the last calendar day (inclusive) an occurrence may fall on.
	EndDate *time.Time
}

// Schedulable is implemented by anything that can be expanded into occurrences.
type Schedulable interface {
	Schedule() Rule
}

// Occurrence is one dated instance of an event.
type Occurrence[E any] struct {
	Event E
	Start time.Time
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// WeekdayAbbrev returns the fixed English abbreviation for d.
func WeekdayAbbrev(d time.Weekday) string {
	return d.String()[:3]
}

// ParseWeekday accepts "Mon", "mon" or "Monday".
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	d, ok := weekdays[s[:3]]
	return d, ok
}

func (r Rule) weekdaySet() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(r.Days))
	for _, s := range r.Days {
		if d, ok := ParseWeekday(s); ok {
			set[d] = true
		}
	}
	return set
}
