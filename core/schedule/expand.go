package schedule

import (
	"sort"
	"time"
)

// Expand resolves the occurrences of event that fall inside w.
//
// A non-recurring event yields itself when its start date lies in w. A recurring
// event is walked one calendar day at a time from the start of its anchor day up to
// the earliest of its end date, the window end and the five year cap. The count cap
// is applied to every match since the anchor, including matches before w.Start.
func Expand[E Schedulable](event E, w Window) []Occurrence[E] {
	rule := event.Schedule()
	if rule.StartDate.IsZero() {
		return nil
	}

	if !rule.IsRecurring {
		if w.Contains(rule.StartDate) {
			return []Occurrence[E]{{Event: event, Start: rule.StartDate}}
		}
		return nil
	}

	if rule.Pattern != Weekly && rule.Pattern != EveryTwoWeeks {
		return nil
	}
	if rule.EndCount != nil && *rule.EndCount <= 0 {
		return nil
	}
	days := rule.weekdaySet()
	if len(days) == 0 {
		return nil
	}

	start := rule.StartDate
	loc := start.Location()
	anchor := StartOfDay(start)
	loopEnd := recurrenceEnd(rule, w)

	var out []Occurrence[E]
	matched := 0
	for day := anchor; !day.After(loopEnd); day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc) {
		if !days[day.Weekday()] {
			continue
		}
		if rule.Pattern == EveryTwoWeeks && (civilDays(anchor, day)/7)%2 != 0 {
			continue
		}

		matched++
		at := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), start.Second(), 0, loc)
		if w.Start.IsZero() || !at.Before(w.Start) {
			out = append(out, Occurrence[E]{Event: event, Start: at})
		}

		if rule.EndCount != nil && matched >= *rule.EndCount {
			break
		}
	}

	return out
}

// ExpandAll expands every event against w and returns the occurrences ordered by start.
func ExpandAll[E Schedulable](events []E, w Window) []Occurrence[E] {
	out := make([]Occurrence[E], 0, len(events))
	for _, e := range events {
		out = append(out, Expand(e, w)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// recurrenceEnd is the last instant the day walk may reach, in the anchor's location.
func recurrenceEnd(rule Rule, w Window) time.Time {
	loc := rule.StartDate.Location()
	end := rule.StartDate.AddDate(MaxRecurrenceYears, 0, 0)
	if rule.EndDate != nil && !rule.EndDate.IsZero() && rule.EndDate.Before(end) {
		end = *rule.EndDate
	}
	if !w.End.IsZero() && w.End.Before(end) {
		end = w.End
	}
	return EndOfDay(end.In(loc))
}

// civilDays counts calendar days from a to b, ignoring clock changes.
func civilDays(a, b time.Time) int {
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
