package entity

import (
	coreEntity "club-api/core/entity"
	"club-api/core/schedule"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EventType string

const (
	EventTypeTournament           EventType = "Tournament"
	EventTypePractice             EventType = "Practice"
	EventTypeSocialEvent          EventType = "Social_Event"
	EventTypeStrengthConditioning EventType = "Strength_Conditioning"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeTournament, EventTypePractice, EventTypeSocialEvent, EventTypeStrengthConditioning:
		return true
	}
	return false
}

// Event is a row of the events table. StartDate carries the anchor day at the
// event's start time.
type Event struct {
	coreEntity.BaseEntity
	TeamID             *uuid.UUID     `db:"team_id"`
	TeamName           *string        `db:"team_name"`
	EventType          EventType      `db:"event_type"`
	Name               string         `db:"name"`
	StartDate          time.Time      `db:"start_date"`
	EndDate            *time.Time     `db:"end_date"`
	StartTime          string         `db:"start_time"`
	EndTime            string         `db:"end_time"`
	Location           *string        `db:"location"`
	Address            *string        `db:"address"`
	Notes              *string        `db:"notes"`
	EventLink          *string        `db:"event_link"`
	GamechangerLink    *string        `db:"gamechanger_link"`
	IsRecurring        bool           `db:"is_recurring"`
	RepeatPattern      *string        `db:"repeat_pattern"`
	RepeatDays         pq.StringArray `db:"repeat_days"`
	EndRecurrenceCount *int           `db:"end_recurrence_count"`
	EndRecurrenceDate  *time.Time     `db:"end_recurrence_date"`

	Coaches []Coach `db:"-"`
}

func (e Event) Schedule() schedule.Rule {
	r := schedule.Rule{
		StartDate:   e.StartDate,
		IsRecurring: e.IsRecurring,
		Days:        e.RepeatDays,
		EndCount:    e.EndRecurrenceCount,
		EndDate:     e.EndRecurrenceDate,
	}
	if e.RepeatPattern != nil {
		r.Pattern = schedule.Pattern(*e.RepeatPattern)
	}
	return r
}

// In returns a copy with every timestamp moved to loc.
func (e Event) In(loc *time.Location) Event {
	e.StartDate = e.StartDate.In(loc)
	if e.EndDate != nil {
		t := e.EndDate.In(loc)
		e.EndDate = &t
	}
	if e.EndRecurrenceDate != nil {
		t := e.EndRecurrenceDate.In(loc)
		e.EndRecurrenceDate = &t
	}
	return e
}

type Coach struct {
	ID             uuid.UUID `db:"id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Email          string    `db:"email"`
	ProfilePicture *string   `db:"profile_picture"`
}

// EventCoach is one row of the event/coach join used to attach coaches in bulk.
type EventCoach struct {
	EventID uuid.UUID `db:"event_id"`
	Coach
}

type CoachAccount struct {
	ID              uuid.UUID `db:"id"`
	PermissionLevel string    `db:"permission_level"`
}
