package validator

import (
	"club-api/core/utils"
	"club-api/core/validation"
	"club-api/modules/team/dto"
	"strings"
	"unicode/utf8"
)

func ValidateCreateTeamRequest(req *dto.TeamRequest) *validation.Result {
	result := &validation.Result{}
	if strings.TrimSpace(req.TeamName) == "" {
		result.Add("team_name", "Team name is required")
	}
	if strings.TrimSpace(req.AgeGroup) == "" {
		result.Add("age_group", "Age group is required")
	}
	validateCommon(result, req)
	return result
}

func ValidateUpdateTeamRequest(req *dto.TeamRequest) *validation.Result {
	result := &validation.Result{}
	validateCommon(result, req)
	return result
}

func validateCommon(result *validation.Result, req *dto.TeamRequest) {
	if utf8.RuneCountInString(strings.TrimSpace(req.TeamName)) > 100 {
		result.Add("team_name", "Team name must be less than 100 characters")
	}
	seen := map[string]bool{}
	for _, raw := range req.CoachIDs {
		id, ok := utils.ToUUID(raw)
		if !ok {
			result.Add("coach_ids", "Coach IDs must be valid identifiers")
			return
		}
		if seen[id.String()] {
			result.Add("coach_ids", "Coach IDs must be unique")
			return
		}
		seen[id.String()] = true
	}
}
