package service

import (
	"club-api/core/constants"
	coreEntity "club-api/core/entity"
	"club-api/core/errors"
	"club-api/core/logger"
	"club-api/core/params"
	"club-api/core/schedule"
	"club-api/core/utils"
	eventEntity "club-api/modules/event/entity"
	eventMapper "club-api/modules/event/mapper"
	eventRepository "club-api/modules/event/repository"
	"club-api/modules/team/dto"
	"club-api/modules/team/mapper"
	"club-api/modules/team/repository"
	"context"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
)

// EventFinder is the part of the event repository the team views read.
type EventFinder interface {
	FindOverlapping(ctx context.Context, filter eventRepository.EventFilter, w schedule.Window) ([]eventEntity.Event, error)
}

type TeamService struct {
	repo   repository.TeamRepositoryInterface
	events EventFinder
	loc    *time.Location
	now    func() time.Time
	code   func() (string, error)
}

type TeamServiceInterface interface {
	CreateTeam(ctx context.Context, req *dto.TeamRequest) (*dto.TeamResponse, *errors.AppError)
	GetTeams(ctx context.Context, p params.QueryParams) (*dto.PaginatedTeamResponse, *errors.AppError)
	GetTeam(ctx context.Context, id uuid.UUID) (*dto.TeamDetailResponse, *errors.AppError)
	UpdateTeam(ctx context.Context, id uuid.UUID, req *dto.TeamRequest) (*dto.TeamResponse, *errors.AppError)
	DeleteTeam(ctx context.Context, id uuid.UUID) *errors.AppError
	CalendarFeed(ctx context.Context, code string) (string, *errors.AppError)
	CanSubscribe(ctx context.Context, actor coreEntity.Actor, teamID uuid.UUID) *errors.AppError
}

func NewTeamService(repo repository.TeamRepositoryInterface, events EventFinder, loc *time.Location) *TeamService {
	return &TeamService{repo: repo, events: events, loc: loc, now: time.Now, code: utils.GenerateTeamCode}
}

func (s *TeamService) CreateTeam(ctx context.Context, req *dto.TeamRequest) (*dto.TeamResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team := mapper.ToTeamEntity(req)
	coachIDs := eventMapper.ToCoachIDs(req.CoachIDs)

	// One pre-check and one retry on insert. The unique index is the final guard.
	code, appErr := s.freeCode(ctx)
	if appErr != nil {
		return nil, appErr
	}
	team.UniqueCode = code

	created, err := s.repo.Create(ctx, team, coachIDs)
	if stdErrors.Is(err, repository.ErrCodeTaken) {
		logger.Warn("TeamService:CreateTeam:CodeCollision", "code", team.UniqueCode)
		if team.UniqueCode, err = s.code(); err == nil {
			created, err = s.repo.Create(ctx, team, coachIDs)
		}
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create team", err)
	}

	logger.Info("TeamService:CreateTeam:Created", "team_id", created.ID, "code", created.UniqueCode)
	resp := mapper.ToTeamResponse(created)
	return &resp, nil
}

func (s *TeamService) freeCode(ctx context.Context) (string, *errors.AppError) {
	code, err := s.code()
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Failed to generate team code", err)
	}
	taken, err := s.repo.CodeExists(ctx, code)
	if err != nil {
		return "", errors.NewAppError(errors.ErrCreateFailed, "Failed to create team", err)
	}
	if taken {
		if code, err = s.code(); err != nil {
			return "", errors.NewAppError(errors.ErrInternalServer, "Failed to generate team code", err)
		}
	}
	return code, nil
}

func (s *TeamService) GetTeams(ctx context.Context, p params.QueryParams) (*dto.PaginatedTeamResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get teams", err)
	}
	return mapper.ToPaginatedTeamResponse(page), nil
}

// GetTeam returns the team with its roster and every occurrence from the start
// of today through one year from now.
func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*dto.TeamDetailResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}

	players, err := s.repo.Players(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team players", err)
	}

	now := s.now().In(s.loc)
	w := schedule.Window{Start: schedule.StartOfDay(now), End: now.AddDate(constants.UpcomingEventsSpan, 0, 0)}
	occs, appErr := s.occurrences(ctx, id, w)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToTeamDetailResponse(team, players, occs), nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uuid.UUID, req *dto.TeamRequest) (*dto.TeamResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}

	patch := mapper.ToTeamEntity(req)
	if patch.Name != "" {
		team.Name = patch.Name
	}
	if patch.AgeGroup != nil {
		team.AgeGroup = patch.AgeGroup
	}
	if err := s.repo.Update(ctx, team, eventMapper.ToCoachIDs(req.CoachIDs)); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update team", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team", err)
	}
	resp := mapper.ToTeamResponse(updated)
	return &resp, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get team", err)
	}
	if team == nil {
		return errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete team", err)
	}
	logger.Info("TeamService:DeleteTeam:Deleted", "team_id", id)
	return nil
}

// CalendarFeed renders the iCalendar feed of the team with the given public code.
func (s *TeamService) CalendarFeed(ctx context.Context, code string) (string, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	team, err := s.repo.GetByCode(ctx, utils.NormalizeTeamCode(code))
	if err != nil {
		return "", errors.NewAppError(errors.ErrGetFailed, "Failed to get team", err)
	}
	if team == nil {
		return "", errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}

	now := s.now().In(s.loc)
	from := schedule.StartOfDay(now)
	w := schedule.Window{Start: from, End: schedule.EndOfDay(from.AddDate(0, constants.CalendarFeedMonths, 0))}
	occs, appErr := s.occurrences(ctx, team.ID, w)
	if appErr != nil {
		return "", appErr
	}
	return BuildCalendar(team, occs, now), nil
}

func (s *TeamService) CanSubscribe(ctx context.Context, actor coreEntity.Actor, teamID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	ok, err := s.repo.IsMember(ctx, actor.Role, actor.ID, teamID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to verify team access", err)
	}
	if !ok {
		return errors.NewAppError(errors.ErrForbidden, "You do not belong to this team", nil)
	}
	return nil
}

func (s *TeamService) occurrences(ctx context.Context, teamID uuid.UUID, w schedule.Window) ([]schedule.Occurrence[eventEntity.Event], *errors.AppError) {
	events, err := s.events.FindOverlapping(ctx, eventRepository.EventFilter{TeamIDs: []uuid.UUID{teamID}}, w)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get team events", err)
	}
	for i := range events {
		events[i] = events[i].In(s.loc)
	}
	return schedule.ExpandAll(events, w), nil
}
