package dto

import (
	eventDto "club-api/modules/event/dto"
	"time"
)

// TeamRequest is used for create and update. On update, empty fields keep the
// stored value and a missing coach_ids keeps the current coaches.
type TeamRequest struct {
	TeamName string   `json:"team_name"`
	AgeGroup string   `json:"age_group"`
	CoachIDs []string `json:"coach_ids"`
}

type TeamResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	AgeGroup   *string                  `json:"age_group"`
	UniqueCode string                   `json:"unique_code"`
	Coaches    []eventDto.CoachResponse `json:"coaches"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

type PlayerResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	JerseyNumber *int   `json:"jersey_number"`
}

// TeamDetailResponse adds the roster and the upcoming occurrences.
type TeamDetailResponse struct {
	TeamResponse
	Players []PlayerResponse              `json:"players"`
	Events  []eventDto.OccurrenceResponse `json:"events"`
}

type PaginatedTeamResponse struct {
	Items      []TeamResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
}
