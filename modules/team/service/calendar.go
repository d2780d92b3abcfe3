package service

import (
	"club-api/core/schedule"
	eventEntity "club-api/modules/event/entity"
	"club-api/modules/team/entity"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//club-api//team schedule//EN"

// BuildCalendar renders occurrences as a published iCalendar feed with one
// VEVENT per occurrence. UIDs combine the event id and the occurrence start so
// calendar clients can track single instances.
func BuildCalendar(team *entity.Team, occs []schedule.Occurrence[eventEntity.Event], stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(team.Name)
	cal.SetXWRCalName(team.Name)

	for _, occ := range occs {
		e := occ.Event
		uid := fmt.Sprintf("%s-%s@club-api", e.ID, occ.Start.UTC().Format("20060102T150405Z"))

		vevent := cal.AddEvent(uid)
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(occ.Start)
		vevent.SetEndAt(occurrenceEnd(occ))
		vevent.SetSummary(e.Name)
		if where := place(e); where != "" {
			vevent.SetLocation(where)
		}
		vevent.SetDescription(description(e))
		if e.EventLink != nil {
			vevent.SetURL(*e.EventLink)
		}
	}
	return cal.Serialize()
}

// occurrenceEnd puts end_time on the occurrence's day. A missing or earlier end
// gives a zero-length event.
func occurrenceEnd(occ schedule.Occurrence[eventEntity.Event]) time.Time {
	clock, ok := schedule.ParseClock(occ.Event.EndTime)
	if !ok {
		return occ.Start
	}
	end := time.Date(occ.Start.Year(), occ.Start.Month(), occ.Start.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, occ.Start.Location())
	if end.Before(occ.Start) {
		return occ.Start
	}
	return end
}

func place(e eventEntity.Event) string {
	parts := make([]string, 0, 2)
	if e.Location != nil && *e.Location != "" {
		parts = append(parts, *e.Location)
	}
	if e.Address != nil && *e.Address != "" {
		parts = append(parts, *e.Address)
	}
	return strings.Join(parts, ", ")
}

func description(e eventEntity.Event) string {
	lines := []string{strings.ReplaceAll(string(e.EventType), "_", " ")}
	if e.Notes != nil && *e.Notes != "" {
		lines = append(lines, *e.Notes)
	}
	if e.GamechangerLink != nil {
		lines = append(lines, "GameChanger: "+*e.GamechangerLink)
	}
	return strings.Join(lines, "\n")
}
