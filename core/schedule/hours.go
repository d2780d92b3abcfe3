package schedule

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM", "3:04PM"}

// ParseClock reads a time-of-day string onto a fixed reference date.
func ParseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Hours is the length of the start..end time-of-day span. Spans that end before
// they start, and strings that cannot be read, count as zero.
func Hours(startTime, endTime string) float64 {
	start, ok := ParseClock(startTime)
	if !ok {
		return 0
	}
	end, ok := ParseClock(endTime)
	if !ok {
		return 0
	}
	return math.Max(0, end.Sub(start).Hours())
}

// Entry is one timesheet line as seen by Summarize.
type Entry struct {
	EventType string
	Hours     float64
	// Owner identifies the coach credited with the line. Empty lines count toward
	// the totals but not toward ActiveCoaches.
	Owner string
}

type Summary struct {
	Total         float64 `json:"total_hours"`
	Breakdown     string  `json:"breakdown"`
	ActiveCoaches int     `json:"active_coaches"`
	Average       float64 `json:"avg_hours"`
}

const breakdownSeparator = " • "

// Summarize totals entries and groups hours by event type in order of first appearance.
func Summarize(entries []Entry) Summary {
	var total float64
	byType := make(map[string]float64)
	order := make([]string, 0)
	owners := make(map[string]struct{})

	for _, e := range entries {
		total += e.Hours
		kind := e.EventType
		if kind == "" {
			kind = "Other"
		}
		if _, seen := byType[kind]; !seen {
			order = append(order, kind)
		}
		byType[kind] += e.Hours
		if e.Owner != "" {
			owners[e.Owner] = struct{}{}
		}
	}

	parts := make([]string, 0, len(order))
	for _, kind := range order {
		parts = append(parts, fmt.Sprintf("%s: %.1fh", kind, Round1(byType[kind])))
	}

	s := Summary{
		Total:         Round1(total),
		Breakdown:     strings.Join(parts, breakdownSeparator),
		ActiveCoaches: len(owners),
	}
	if s.ActiveCoaches > 0 {
		s.Average = Round1(total / float64(s.ActiveCoaches))
	}
	return s
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
