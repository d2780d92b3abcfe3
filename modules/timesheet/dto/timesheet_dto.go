package dto

import (
	eventDto "club-api/modules/event/dto"
	"time"
)

// TimesheetQuery is shared by every timesheet route. CoachID and TeamID only
// apply to the admin view.
type TimesheetQuery struct {
	Period    string `query:"period"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	CoachID   string `query:"coachId"`
	TeamID    string `query:"teamId"`
}

type PeriodResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TimesheetLine is one coach at one occurrence.
type TimesheetLine struct {
	ID         string                 `json:"id"`
	Date       time.Time              `json:"date"`
	EventType  string                 `json:"event_type"`
	Name       string                 `json:"name"`
	StartTime  string                 `json:"start_time"`
	EndTime    string                 `json:"end_time"`
	TotalHours float64                `json:"total_hours"`
	Notes      *string                `json:"notes"`
	Team       *eventDto.TeamRef      `json:"team,omitempty"`
	Coach      eventDto.CoachResponse `json:"coach"`
}

type TimesheetResponse struct {
	Period           PeriodResponse  `json:"period"`
	Timesheet        []TimesheetLine `json:"timesheet"`
	TotalHourlyHours float64         `json:"total_hourly_hours"`
	Breakdown        string          `json:"breakdown"`
	ActiveCoaches    int             `json:"active_coaches"`
	AvgHourlyHours   float64         `json:"avg_hourly_hours"`
}

type TeamResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AgeGroup   *string `json:"age_group"`
	UniqueCode string  `json:"unique_code"`
}

// TeamsheetLine is one occurrence of a team event with all its coaches.
type TeamsheetLine struct {
	ID         string                   `json:"id"`
	Date       time.Time                `json:"date"`
	EventType  string                   `json:"event_type"`
	Name       string                   `json:"name"`
	StartTime  string                   `json:"start_time"`
	EndTime    string                   `json:"end_time"`
	Location   *string                  `json:"location"`
	Address    *string                  `json:"address"`
	TotalHours float64                  `json:"total_hours"`
	Notes      *string                  `json:"notes"`
	Coaches    []eventDto.CoachResponse `json:"coaches"`
}

type TeamsheetResponse struct {
	Period     PeriodResponse           `json:"period"`
	Team       TeamResponse             `json:"team"`
	Coaches    []eventDto.CoachResponse `json:"coaches"`
	Teamsheet  []TeamsheetLine          `json:"teamsheet"`
	TotalHours float64                  `json:"total_hours"`
	Breakdown  string                   `json:"breakdown"`
}
