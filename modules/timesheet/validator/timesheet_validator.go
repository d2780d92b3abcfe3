package validator

import (
	"club-api/core/schedule"
	"club-api/core/utils"
	"club-api/core/validation"
	"club-api/modules/timesheet/dto"
	"time"
)

func ValidateTimesheetQuery(q *dto.TimesheetQuery) *validation.Result {
	result := &validation.Result{}

	period := schedule.Period(q.Period)
	if q.Period != "" && !period.Valid() {
		result.Add("period", "Period must be one of this_week, this_month, custom")
	}

	if period == schedule.Custom {
		if q.StartDate == "" {
			result.Add("startDate", "Start date is required for custom period")
		} else if !isDate(q.StartDate) {
			result.Add("startDate", "Start date must be a valid date")
		}
		if q.EndDate == "" {
			result.Add("endDate", "End date is required for custom period")
		} else if !isDate(q.EndDate) {
			result.Add("endDate", "End date must be a valid date")
		}
	} else {
		if q.StartDate != "" {
			result.Add("startDate", "Start date is only allowed for custom period")
		}
		if q.EndDate != "" {
			result.Add("endDate", "End date is only allowed for custom period")
		}
	}

	if q.CoachID != "" {
		if _, ok := utils.ToUUID(q.CoachID); !ok {
			result.Add("coachId", "Coach ID must be a valid identifier")
		}
	}
	if q.TeamID != "" {
		if _, ok := utils.ToUUID(q.TeamID); !ok {
			result.Add("teamId", "Team ID must be a valid identifier")
		}
	}
	return result
}

func isDate(s string) bool {
	_, err := utils.ParseDate(s, time.UTC)
	return err == nil
}
