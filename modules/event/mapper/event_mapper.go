package mapper

import (
	"club-api/core/schedule"
	"club-api/core/utils"
	"club-api/modules/event/dto"
	"club-api/modules/event/entity"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func ToCoachResponse(c entity.Coach) dto.CoachResponse {
	return dto.CoachResponse{
		ID:             c.ID.String(),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		ProfilePicture: c.ProfilePicture,
	}
}

func ToCoachResponses(coaches []entity.Coach) []dto.CoachResponse {
	out := make([]dto.CoachResponse, 0, len(coaches))
	for _, c := range coaches {
		out = append(out, ToCoachResponse(c))
	}
	return out
}

func ToTeamRef(e *entity.Event) *dto.TeamRef {
	if e.TeamID == nil {
		return nil
	}
	ref := &dto.TeamRef{ID: e.TeamID.String()}
	if e.TeamName != nil {
		ref.Name = *e.TeamName
	}
	return ref
}

func ToEventResponse(e *entity.Event) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:                 e.ID.String(),
		Team:               ToTeamRef(e),
		EventType:          string(e.EventType),
		Name:               e.Name,
		StartDate:          e.StartDate,
		EndDate:            e.EndDate,
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		Location:           e.Location,
		Address:            e.Address,
		Notes:              e.Notes,
		EventLink:          e.EventLink,
		GamechangerLink:    e.GamechangerLink,
		IsRecurring:        e.IsRecurring,
		RepeatPattern:      e.RepeatPattern,
		RepeatDays:         e.RepeatDays,
		EndRecurrenceCount: e.EndRecurrenceCount,
		EndRecurrenceDate:  e.EndRecurrenceDate,
		Coaches:            ToCoachResponses(e.Coaches),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func ToOccurrenceResponse(o schedule.Occurrence[entity.Event]) dto.OccurrenceResponse {
	e := o.Event
	return dto.OccurrenceResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		EventType:   string(e.EventType),
		StartDate:   o.Start,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		Address:     e.Address,
		Team:        ToTeamRef(&e),
		Coaches:     ToCoachResponses(e.Coaches),
		IsRecurring: e.IsRecurring,
	}
}

func ToOccurrenceResponses(occs []schedule.Occurrence[entity.Event]) []dto.OccurrenceResponse {
	out := make([]dto.OccurrenceResponse, 0, len(occs))
	for _, o := range occs {
		out = append(out, ToOccurrenceResponse(o))
	}
	return out
}

func ToWindowResponse(split schedule.Split[entity.Event]) *dto.WindowResponse {
	return &dto.WindowResponse{
		TodayEvents:   ToOccurrenceResponses(split.Today),
		MonthlyEvents: ToOccurrenceResponses(split.Monthly),
	}
}

// ToEventEntity builds the stored event from a validated request. StartDate is
// the start day at start_time in loc; EndDate, when given, is the end day at
// end_time.
func ToEventEntity(req *dto.EventRequest, loc *time.Location) (*entity.Event, error) {
	teamID, ok := utils.ToUUID(req.TeamID)
	if !ok {
		return nil, fmt.Errorf("invalid team id %q", req.TeamID)
	}
	startDay, err := utils.ParseDate(req.StartDate, loc)
	if err != nil {
		return nil, err
	}
	startClock, ok := schedule.ParseClock(req.StartTime)
	if !ok {
		return nil, fmt.Errorf("invalid start time %q", req.StartTime)
	}

	event := &entity.Event{
		TeamID:          &teamID,
		EventType:       entity.EventType(req.EventType),
		Name:            strings.TrimSpace(req.Name),
		StartDate:       atClock(startDay, startClock, loc),
		StartTime:       strings.TrimSpace(req.StartTime),
		EndTime:         strings.TrimSpace(req.EndTime),
		Location:        optional(req.Location),
		Address:         optional(req.Address),
		Notes:           optional(req.Notes),
		EventLink:       optional(req.EventLink),
		GamechangerLink: optional(req.GamechangerLink),
		IsRecurring:     req.IsRecurring,
		RepeatDays:      pq.StringArray{},
	}

	if endDay, err := utils.ParseOptionalDate(req.EndDate, loc); err != nil {
		return nil, err
	} else if endDay != nil {
		end := *endDay
		if clock, ok := schedule.ParseClock(req.EndTime); ok {
			end = atClock(end, clock, loc)
		}
		event.EndDate = &end
	}

	if req.IsRecurring {
		event.RepeatPattern = optional(req.RepeatPattern)
		event.RepeatDays = append(pq.StringArray{}, req.RepeatDays...)
		event.EndRecurrenceCount = req.EndRecurrenceCount
		until, err := utils.ParseOptionalDate(req.EndRecurrenceDate, loc)
		if err != nil {
			return nil, err
		}
		event.EndRecurrenceDate = until
	}
	return event, nil
}

// ToCoachIDs parses validated coach ids. A nil input stays nil.
func ToCoachIDs(raw []string) []uuid.UUID {
	if raw == nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, ok := utils.ToUUID(s); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func atClock(day, clock time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
