package mapper

import (
	"club-api/core/schedule"
	eventEntity "club-api/modules/event/entity"
	eventMapper "club-api/modules/event/mapper"
	"club-api/modules/timesheet/dto"
	"club-api/modules/timesheet/entity"
)

func ToPeriodResponse(w schedule.Window) dto.PeriodResponse {
	return dto.PeriodResponse{Start: w.Start, End: w.End}
}

func ToTimesheetLine(occ schedule.Occurrence[eventEntity.Event], coach eventEntity.Coach) dto.TimesheetLine {
	e := occ.Event
	return dto.TimesheetLine{
		ID:         e.ID.String(),
		Date:       occ.Start,
		EventType:  string(e.EventType),
		Name:       e.Name,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		TotalHours: schedule.Hours(e.StartTime, e.EndTime),
		Notes:      e.Notes,
		Team:       eventMapper.ToTeamRef(&e),
		Coach:      eventMapper.ToCoachResponse(coach),
	}
}

func ToTeamsheetLine(occ schedule.Occurrence[eventEntity.Event]) dto.TeamsheetLine {
	e := occ.Event
	return dto.TeamsheetLine{
		ID:         e.ID.String(),
		Date:       occ.Start,
		EventType:  string(e.EventType),
		Name:       e.Name,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Location:   e.Location,
		Address:    e.Address,
		TotalHours: schedule.Hours(e.StartTime, e.EndTime),
		Notes:      e.Notes,
		Coaches:    eventMapper.ToCoachResponses(e.Coaches),
	}
}

func ToTeamResponse(t *entity.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		AgeGroup:   t.AgeGroup,
		UniqueCode: t.UniqueCode,
	}
}
