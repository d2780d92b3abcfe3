package mapper

import (
	"club-api/modules/coach/dto"
	"club-api/modules/coach/entity"
)

func ToProfileResponse(c *entity.Coach, teams []entity.CoachTeam) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:              c.ID.String(),
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		PermissionLevel: c.PermissionLevel,
		ProfilePicture:  c.ProfilePicture,
		Teams:           make([]dto.TeamSummary, 0, len(teams)),
	}
	for _, t := range teams {
		resp.Teams = append(resp.Teams, dto.TeamSummary{
			ID:         t.ID.String(),
			Name:       t.Name,
			AgeGroup:   t.AgeGroup,
			UniqueCode: t.UniqueCode,
		})
	}
	return resp
}
