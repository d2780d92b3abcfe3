package validator

import (
	"club-api/core/schedule"
	"club-api/core/utils"
	"club-api/core/validation"
	"club-api/modules/event/dto"
	"club-api/modules/event/entity"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

var repeatDays = map[string]bool{"Sun": true, "Mon": true, "Tue": true, "Wed": true, "Thu": true, "Fri": true, "Sat": true}

func ValidateEventRequest(req *dto.EventRequest) *validation.Result {
	result := &validation.Result{}

	if _, ok := utils.ToUUID(req.TeamID); !ok {
		result.Add("team_id", "Team ID is required")
	}
	if !entity.EventType(req.EventType).Valid() {
		result.Add("event_type", "Event type must be Tournament, Practice, Social_Event, or Strength_Conditioning")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		result.Add("name", "Event name is required")
	} else if utf8.RuneCountInString(name) > 100 {
		result.Add("name", "Event name must be less than 100 characters")
	}

	if !isDate(req.StartDate) {
		result.Add("start_date", "Start date must be a valid date")
	}
	if req.EndDate != "" && !isDate(req.EndDate) {
		result.Add("end_date", "End date must be a valid date")
	}
	if _, ok := schedule.ParseClock(req.StartTime); !ok {
		result.Add("start_time", "Start time is required")
	}
	if _, ok := schedule.ParseClock(req.EndTime); !ok {
		result.Add("end_time", "End time is required")
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Location)) > 255 {
		result.Add("location", "Location must be less than 255 characters")
	}
	if strings.TrimSpace(req.Address) == "" {
		result.Add("address", "Address is required")
	}
	if req.EventLink != "" && !isURL(req.EventLink) {
		result.Add("event_link", "Event link must be a valid URL")
	}
	if req.GamechangerLink != "" && !isURL(req.GamechangerLink) {
		result.Add("gamechanger_link", "GameChanger link must be a valid URL")
	}

	if req.IsRecurring {
		switch schedule.Pattern(req.RepeatPattern) {
		case schedule.Weekly, schedule.EveryTwoWeeks:
		case "":
			result.Add("repeat_pattern", "Repeat pattern is required for recurring events")
		default:
			result.Add("repeat_pattern", "Repeat pattern must be 'Weekly' or 'Every_Two_Weeks'")
		}
		if len(req.RepeatDays) == 0 {
			result.Add("repeat_days", "Select at least one day for recurring events")
		}
		for _, d := range req.RepeatDays {
			if !repeatDays[d] {
				result.Add("repeat_days", "Repeat days must be Sun, Mon, Tue, Wed, Thu, Fri or Sat")
				break
			}
		}
	}

	if req.EndRecurrenceCount != nil && *req.EndRecurrenceCount <= 0 {
		result.Add("end_recurrence_count", "Recurrence count must be a positive number")
	}
	if req.EndRecurrenceDate != "" {
		if !isDate(req.EndRecurrenceDate) {
			result.Add("end_recurrence_date", "End recurrence date must be a valid date")
		} else if req.EndRecurrenceCount != nil {
			result.Add("end_recurrence_date", "Cannot specify both recurrence count and end date")
		}
	}

	validateCoachIDs(result, req.CoachIDs)
	return result
}

func ValidateUpdateCoachesRequest(req *dto.UpdateCoachesRequest) *validation.Result {
	result := &validation.Result{}
	if req.CoachIDs == nil {
		result.Add("coach_ids", "Coach IDs are required")
	}
	validateCoachIDs(result, req.CoachIDs)
	return result
}

func validateCoachIDs(result *validation.Result, ids []string) {
	seen := make(map[string]bool, len(ids))
	for _, raw := range ids {
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

func isDate(s string) bool {
	_, err := utils.ParseDate(s, time.UTC)
	return err == nil
}

func isURL(s string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(s))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
