package dto

import "time"

// ===================== Request DTOs =====================

// EventRequest is the body of create and update calls. Dates are YYYY-MM-DD,
// times HH:MM.
type EventRequest struct {
	TeamID             string   `json:"team_id"`
	EventType          string   `json:"event_type"`
	Name               string   `json:"name"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	Location           string   `json:"location"`
	Address            string   `json:"address"`
	Notes              string   `json:"notes"`
	EventLink          string   `json:"event_link"`
	GamechangerLink    string   `json:"gamechanger_link"`
	IsRecurring        bool     `json:"is_recurring"`
	RepeatPattern      string   `json:"repeat_pattern"`
	RepeatDays         []string `json:"repeat_days"`
	EndRecurrenceCount *int     `json:"end_recurrence_count"`
	EndRecurrenceDate  string   `json:"end_recurrence_date"`
	CoachIDs           []string `json:"coach_ids"`
}

type UpdateCoachesRequest struct {
	CoachIDs []string `json:"coach_ids"`
}

// WindowQuery selects the month listing: the month containing Date (today when
// empty), optionally one team.
type WindowQuery struct {
	TeamID string `query:"teamId"`
	Date   string `query:"date"`
}

// ===================== Response DTOs =====================

type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CoachResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email,omitempty"`
	ProfilePicture *string `json:"profile_picture"`
}

type EventResponse struct {
	ID                 string          `json:"id"`
	Team               *TeamRef        `json:"team,omitempty"`
	EventType          string          `json:"event_type"`
	Name               string          `json:"name"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            *time.Time      `json:"end_date,omitempty"`
	StartTime          string          `json:"start_time"`
	EndTime            string          `json:"end_time"`
	Location           *string         `json:"location"`
	Address            *string         `json:"address"`
	Notes              *string         `json:"notes"`
	EventLink          *string         `json:"event_link,omitempty"`
	GamechangerLink    *string         `json:"gamechanger_link,omitempty"`
	IsRecurring        bool            `json:"is_recurring"`
	RepeatPattern      *string         `json:"repeat_pattern,omitempty"`
	RepeatDays         []string        `json:"repeat_days,omitempty"`
	EndRecurrenceCount *int            `json:"end_recurrence_count,omitempty"`
	EndRecurrenceDate  *time.Time      `json:"end_recurrence_date,omitempty"`
	Coaches            []CoachResponse `json:"coaches"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OccurrenceResponse is one dated instance of an event in a listing.
type OccurrenceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	EventType   string          `json:"event_type"`
	StartDate   time.Time       `json:"start_date"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Location    *string         `json:"location"`
	Address     *string         `json:"address"`
	Team        *TeamRef        `json:"team,omitempty"`
	Coaches     []CoachResponse `json:"coaches"`
	IsRecurring bool            `json:"is_recurring"`
}

type WindowResponse struct {
	TodayEvents   []OccurrenceResponse `json:"today_events"`
	MonthlyEvents []OccurrenceResponse `json:"monthly_events"`
}
