package mapper

import (
	coreEntity "club-api/core/entity"
	"club-api/core/schedule"
	eventEntity "club-api/modules/event/entity"
	eventMapper "club-api/modules/event/mapper"
	"club-api/modules/team/dto"
	"club-api/modules/team/entity"
	"strings"
)

func ToTeamEntity(req *dto.TeamRequest) *entity.Team {
	team := &entity.Team{Name: strings.TrimSpace(req.TeamName)}
	if age := strings.TrimSpace(req.AgeGroup); age != "" {
		team.AgeGroup = &age
	}
	return team
}

func ToTeamResponse(t *entity.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		AgeGroup:   t.AgeGroup,
		UniqueCode: t.UniqueCode,
		Coaches:    eventMapper.ToCoachResponses(t.Coaches),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func ToTeamDetailResponse(t *entity.Team, players []entity.Player, occs []schedule.Occurrence[eventEntity.Event]) *dto.TeamDetailResponse {
	out := &dto.TeamDetailResponse{
		TeamResponse: ToTeamResponse(t),
		Players:      make([]dto.PlayerResponse, 0, len(players)),
		Events:       eventMapper.ToOccurrenceResponses(occs),
	}
	for _, p := range players {
		out.Players = append(out.Players, dto.PlayerResponse{
			ID:           p.ID.String(),
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			JerseyNumber: p.JerseyNumber,
		})
	}
	return out
}

func ToPaginatedTeamResponse(p *coreEntity.Pagination[entity.Team]) *dto.PaginatedTeamResponse {
	items := make([]dto.TeamResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, ToTeamResponse(&p.Items[i]))
	}
	return &dto.PaginatedTeamResponse{
		Items:      items,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}
}
