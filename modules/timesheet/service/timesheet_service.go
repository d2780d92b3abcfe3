package service

import (
	"club-api/core/constants"
	coreEntity "club-api/core/entity"
	"club-api/core/errors"
	"club-api/core/logger"
	"club-api/core/schedule"
	"club-api/core/utils"
	eventEntity "club-api/modules/event/entity"
	eventMapper "club-api/modules/event/mapper"
	eventRepository "club-api/modules/event/repository"
	"club-api/modules/timesheet/dto"
	"club-api/modules/timesheet/entity"
	"club-api/modules/timesheet/mapper"
	"club-api/modules/timesheet/repository"
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFinder is the part of the event repository the aggregator reads.
type EventFinder interface {
	FindOverlapping(ctx context.Context, filter eventRepository.EventFilter, w schedule.Window) ([]eventEntity.Event, error)
}

type TimesheetService struct {
	events EventFinder
	repo   repository.TimesheetRepositoryInterface
	loc    *time.Location
	now    func() time.Time
}

type TimesheetServiceInterface interface {
	AdminTimesheet(ctx context.Context, q *dto.TimesheetQuery) (*dto.TimesheetResponse, *errors.AppError)
	CoachTimesheet(ctx context.Context, actor coreEntity.Actor, q *dto.TimesheetQuery) (*dto.TimesheetResponse, *errors.AppError)
	PlayerTeamsheet(ctx context.Context, actor coreEntity.Actor, q *dto.TimesheetQuery) (*dto.TeamsheetResponse, *errors.AppError)
	ParentDashboard(ctx context.Context, actor coreEntity.Actor, playerID uuid.UUID, q *dto.TimesheetQuery) (*dto.TeamsheetResponse, *errors.AppError)
}

func NewTimesheetService(events EventFinder, repo repository.TimesheetRepositoryInterface, loc *time.Location) *TimesheetService {
	return &TimesheetService{events: events, repo: repo, loc: loc, now: time.Now}
}

func (s *TimesheetService) AdminTimesheet(ctx context.Context, q *dto.TimesheetQuery) (*dto.TimesheetResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	filter := eventRepository.EventFilter{}
	if id, ok := utils.ToUUID(q.CoachID); ok {
		filter.CoachID = &id
	}
	if id, ok := utils.ToUUID(q.TeamID); ok {
		filter.TeamIDs = []uuid.UUID{id}
	}
	return s.timesheet(ctx, filter, q)
}

func (s *TimesheetService) CoachTimesheet(ctx context.Context, actor coreEntity.Actor, q *dto.TimesheetQuery) (*dto.TimesheetResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.timesheet(ctx, eventRepository.EventFilter{CoachID: &actor.ID}, q)
}

func (s *TimesheetService) PlayerTeamsheet(ctx context.Context, actor coreEntity.Actor, q *dto.TimesheetQuery) (*dto.TeamsheetResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.teamsheetFor(ctx, actor.ID, q)
}

func (s *TimesheetService) ParentDashboard(ctx context.Context, actor coreEntity.Actor, playerID uuid.UUID, q *dto.TimesheetQuery) (*dto.TeamsheetResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	linked, err := s.repo.ParentLinked(ctx, actor.ID, playerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to verify player link", err)
	}
	if !linked {
		return nil, errors.NewAppError(errors.ErrForbidden, "Access denied. You are not linked to this player", nil)
	}
	return s.teamsheetFor(ctx, playerID, q)
}

// timesheet emits one line per coach per occurrence. With a coach filter only
// that coach's lines are kept, even on events shared with other coaches.
func (s *TimesheetService) timesheet(ctx context.Context, filter eventRepository.EventFilter, q *dto.TimesheetQuery) (*dto.TimesheetResponse, *errors.AppError) {
	w, appErr := s.resolve(q)
	if appErr != nil {
		return nil, appErr
	}
	occs, appErr := s.occurrences(ctx, filter, w)
	if appErr != nil {
		return nil, appErr
	}

	lines := make([]dto.TimesheetLine, 0, len(occs))
	entries := make([]schedule.Entry, 0, len(occs))
	for _, occ := range occs {
		for _, coach := range occ.Event.Coaches {
			if filter.CoachID != nil && coach.ID != *filter.CoachID {
				continue
			}
			line := mapper.ToTimesheetLine(occ, coach)
			lines = append(lines, line)
			entries = append(entries, schedule.Entry{EventType: line.EventType, Hours: line.TotalHours, Owner: coach.ID.String()})
		}
	}

	sum := schedule.Summarize(entries)
	logger.Info("TimesheetService:Timesheet:Aggregated", "lines", len(lines), "total", sum.Total)
	return &dto.TimesheetResponse{
		Period:           mapper.ToPeriodResponse(w),
		Timesheet:        lines,
		TotalHourlyHours: sum.Total,
		Breakdown:        sum.Breakdown,
		ActiveCoaches:    sum.ActiveCoaches,
		AvgHourlyHours:   sum.Average,
	}, nil
}

func (s *TimesheetService) teamsheetFor(ctx context.Context, playerID uuid.UUID, q *dto.TimesheetQuery) (*dto.TeamsheetResponse, *errors.AppError) {
	team, err := s.repo.PlayerTeam(ctx, playerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "You are not assigned to any team", nil)
	}
	return s.teamsheet(ctx, team, q)
}

func (s *TimesheetService) teamsheet(ctx context.Context, team *entity.Team, q *dto.TimesheetQuery) (*dto.TeamsheetResponse, *errors.AppError) {
	w, appErr := s.resolve(q)
	if appErr != nil {
		return nil, appErr
	}
	coaches, err := s.repo.TeamCoaches(ctx, team.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team coaches", err)
	}
	occs, appErr := s.occurrences(ctx, eventRepository.EventFilter{TeamIDs: []uuid.UUID{team.ID}}, w)
	if appErr != nil {
		return nil, appErr
	}

	lines := make([]dto.TeamsheetLine, 0, len(occs))
	entries := make([]schedule.Entry, 0, len(occs))
	for _, occ := range occs {
		line := mapper.ToTeamsheetLine(occ)
		lines = append(lines, line)
		entries = append(entries, schedule.Entry{EventType: line.EventType, Hours: line.TotalHours})
	}

	sum := schedule.Summarize(entries)
	return &dto.TeamsheetResponse{
		Period:     mapper.ToPeriodResponse(w),
		Team:       mapper.ToTeamResponse(team),
		Coaches:    eventMapper.ToCoachResponses(coaches),
		Teamsheet:  lines,
		TotalHours: sum.Total,
		Breakdown:  sum.Breakdown,
	}, nil
}

func (s *TimesheetService) occurrences(ctx context.Context, filter eventRepository.EventFilter, w schedule.Window) ([]schedule.Occurrence[eventEntity.Event], *errors.AppError) {
	events, err := s.events.FindOverlapping(ctx, filter, w)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
	}
	for i := range events {
		events[i] = events[i].In(s.loc)
	}
	return schedule.ExpandAll(events, w), nil
}

func (s *TimesheetService) resolve(q *dto.TimesheetQuery) (schedule.Window, *errors.AppError) {
	start, err := utils.ParseOptionalDate(q.StartDate, s.loc)
	if err != nil {
		return schedule.Window{}, errors.NewAppError(errors.ErrInvalidInput, "Invalid start date", err)
	}
	end, err := utils.ParseOptionalDate(q.EndDate, s.loc)
	if err != nil {
		return schedule.Window{}, errors.NewAppError(errors.ErrInvalidInput, "Invalid end date", err)
	}
	return schedule.ResolvePeriod(schedule.Period(q.Period), start, end, s.now().In(s.loc)), nil
}
