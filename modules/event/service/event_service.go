package service

import (
	"club-api/core/constants"
	coreEntity "club-api/core/entity"
	"club-api/core/errors"
	"club-api/core/logger"
	"club-api/core/mail"
	"club-api/core/realtime"
	"club-api/core/schedule"
	"club-api/core/utils"
	"club-api/modules/event/dto"
	"club-api/modules/event/entity"
	"club-api/modules/event/mapper"
	"club-api/modules/event/repository"
	"context"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
)

type EventService struct {
	repo      repository.EventRepositoryInterface
	publisher realtime.Publisher
	loc       *time.Location
	now       func() time.Time
}

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, actor coreEntity.Actor, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError)
	UpdateEventCoaches(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.UpdateCoachesRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) *errors.AppError
	GetEvents(ctx context.Context, actor coreEntity.Actor, query *dto.WindowQuery) (*dto.WindowResponse, *errors.AppError)

	// DailyDigests builds one schedule email per coach with occurrences on day.
	DailyDigests(ctx context.Context, day time.Time) ([]mail.Message, error)
}

func NewEventService(repo repository.EventRepositoryInterface, publisher realtime.Publisher, loc *time.Location) *EventService {
	return &EventService{repo: repo, publisher: publisher, loc: loc, now: time.Now}
}

// ===================== Commands =====================

func (s *EventService) CreateEvent(ctx context.Context, actor coreEntity.Actor, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := mapper.ToEventEntity(req, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid event data", err)
	}
	if appErr := s.authorizeWrite(ctx, actor, *event.TeamID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkTeam(ctx, *event.TeamID); appErr != nil {
		return nil, appErr
	}

	coachIDs := mapper.ToCoachIDs(req.CoachIDs)
	if len(coachIDs) == 0 && actor.Is(constants.RoleCoach) {
		coachIDs = []uuid.UUID{actor.ID}
	}
	if appErr := s.checkCoaches(ctx, coachIDs); appErr != nil {
		return nil, appErr
	}

	created, err := s.repo.Create(ctx, event, coachIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}
	logger.Info("EventService:CreateEvent:Created", "event_id", created.ID, "recurring", created.IsRecurring)

	resp := mapper.ToEventResponse(s.localize(created))
	s.publish(created.TeamID, realtime.TypeEventCreated, resp)
	return resp, nil
}

func (s *EventService) GetEvent(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if actor.Is(constants.RoleCoach) {
		teams, err := s.repo.CoachTeamIDs(ctx, actor.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
		}
		if event.TeamID == nil || !slices.Contains(teams, *event.TeamID) {
			return nil, errors.NewAppError(errors.ErrForbidden, "You are not a coach of this team", nil)
		}
	}
	return mapper.ToEventResponse(s.localize(event)), nil
}

func (s *EventService) UpdateEvent(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	event, err := mapper.ToEventEntity(req, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid event data", err)
	}
	if appErr := s.authorizeWrite(ctx, actor, teamOf(existing), *event.TeamID); appErr != nil {
		return nil, appErr
	}
	if *event.TeamID != teamOf(existing) {
		if appErr := s.checkTeam(ctx, *event.TeamID); appErr != nil {
			return nil, appErr
		}
	}

	coachIDs := mapper.ToCoachIDs(req.CoachIDs)
	if appErr := s.checkCoaches(ctx, coachIDs); appErr != nil {
		return nil, appErr
	}

	event.ID = existing.ID
	if err := s.repo.Update(ctx, event, coachIDs); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}

	updated, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	resp := mapper.ToEventResponse(s.localize(updated))
	s.publish(updated.TeamID, realtime.TypeEventUpdated, resp)
	if existing.TeamID != nil && teamOf(existing) != teamOf(updated) {
		s.publish(existing.TeamID, realtime.TypeEventDeleted, map[string]string{"id": id.String()})
	}
	return resp, nil
}

func (s *EventService) UpdateEventCoaches(ctx context.Context, actor coreEntity.Actor, id uuid.UUID, req *dto.UpdateCoachesRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeWrite(ctx, actor, teamOf(existing)); appErr != nil {
		return nil, appErr
	}

	coachIDs := mapper.ToCoachIDs(req.CoachIDs)
	if appErr := s.checkCoaches(ctx, coachIDs); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.SetCoaches(ctx, id, coachIDs); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event coaches", err)
	}

	updated, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	resp := mapper.ToEventResponse(s.localize(updated))
	s.publish(updated.TeamID, realtime.TypeEventUpdated, resp)
	return resp, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor coreEntity.Actor, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.load(ctx, id)
	if appErr != nil {
		return appErr
	}
	if appErr := s.authorizeWrite(ctx, actor, teamOf(existing)); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}

	logger.Info("EventService:DeleteEvent:Deleted", "event_id", id)
	s.publish(existing.TeamID, realtime.TypeEventDeleted, map[string]string{"id": id.String()})
	return nil
}

// ===================== Queries =====================

// GetEvents lists the occurrences of the month containing query.Date and
// splits out the ones on that day.
func (s *EventService) GetEvents(ctx context.Context, actor coreEntity.Actor, query *dto.WindowQuery) (*dto.WindowResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	ref := s.now().In(s.loc)
	if query.Date != "" {
		d, err := utils.ParseDate(query.Date, s.loc)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date", err)
		}
		ref = d
	}

	filter := repository.EventFilter{}
	if query.TeamID != "" {
		teamID, ok := utils.ToUUID(query.TeamID)
		if !ok {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid team id", nil)
		}
		filter.TeamIDs = []uuid.UUID{teamID}
	}
	if actor.Is(constants.RoleCoach) {
		teams, err := s.repo.CoachTeamIDs(ctx, actor.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
		}
		filter.TeamIDs = scopeTeams(filter.TeamIDs, teams)
	}

	events, appErr := s.window(ctx, filter, schedule.MonthBounds(ref))
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToWindowResponse(schedule.MonthOf(events, ref)), nil
}

func (s *EventService) DailyDigests(ctx context.Context, day time.Time) ([]mail.Message, error) {
	day = day.In(s.loc)
	bounds := schedule.DayBounds(day)

	events, err := s.repo.FindOverlapping(ctx, repository.EventFilter{}, bounds)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i] = events[i].In(s.loc)
	}

	type digest struct {
		coach entity.Coach
		items []mail.DigestItem
	}
	byCoach := map[uuid.UUID]*digest{}
	for _, occ := range schedule.ExpandAll(events, bounds) {
		item := mail.DigestItem{
			Time: occ.Start.Format("3:04 PM"),
			Name: occ.Event.Name,
			Type: string(occ.Event.EventType),
		}
		if occ.Event.Location != nil {
			item.Location = *occ.Event.Location
		}
		for _, c := range occ.Event.Coaches {
			if c.Email == "" {
				continue
			}
			d, ok := byCoach[c.ID]
			if !ok {
				d = &digest{coach: c}
				byCoach[c.ID] = d
			}
			d.items = append(d.items, item)
		}
	}

	digests := make([]*digest, 0, len(byCoach))
	for _, d := range byCoach {
		digests = append(digests, d)
	}
	sort.Slice(digests, func(i, j int) bool { return digests[i].coach.Email < digests[j].coach.Email })

	date := day.Format("Monday, January 2, 2006")
	messages := make([]mail.Message, 0, len(digests))
	for _, d := range digests {
		body, err := mail.Render("daily_digest.html", mail.DigestData{Name: d.coach.FirstName, Date: date, Items: d.items})
		if err != nil {
			return nil, err
		}
		messages = append(messages, mail.Message{
			To:      []string{d.coach.Email},
			Subject: "Your schedule for " + date,
			Body:    body,
			IsHTML:  true,
		})
	}
	logger.Info("EventService:DailyDigests:Built", "date", day.Format(time.DateOnly), "count", len(messages))
	return messages, nil
}

// ===================== Helpers =====================

func (s *EventService) window(ctx context.Context, filter repository.EventFilter, w schedule.Window) ([]entity.Event, *errors.AppError) {
	events, err := s.repo.FindOverlapping(ctx, filter, w)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
	}
	for i := range events {
		events[i] = events[i].In(s.loc)
	}
	return events, nil
}

func (s *EventService) load(ctx context.Context, id uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}

// authorizeWrite lets admins through. Coaches need full permission and a seat
// on every team touched.
func (s *EventService) authorizeWrite(ctx context.Context, actor coreEntity.Actor, teamIDs ...uuid.UUID) *errors.AppError {
	switch actor.Role {
	case constants.RoleAdmin:
		return nil
	case constants.RoleCoach:
	default:
		return errors.NewAppError(errors.ErrForbidden, "You cannot manage events", nil)
	}

	account, err := s.repo.GetCoachAccount(ctx, actor.ID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to load coach", err)
	}
	if account == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "Coach not found", nil)
	}
	if account.PermissionLevel == constants.PermissionReadOnly {
		return errors.NewAppError(errors.ErrForbidden, "You have read-only access", nil)
	}

	teams, err := s.repo.CoachTeamIDs(ctx, actor.ID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to load coach teams", err)
	}
	for _, id := range teamIDs {
		if !slices.Contains(teams, id) {
			return errors.NewAppError(errors.ErrForbidden, "You are not a coach of this team", nil)
		}
	}
	return nil
}

func (s *EventService) checkTeam(ctx context.Context, teamID uuid.UUID) *errors.AppError {
	ok, err := s.repo.TeamExists(ctx, teamID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to load team", err)
	}
	if !ok {
		return errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}
	return nil
}

func (s *EventService) checkCoaches(ctx context.Context, ids []uuid.UUID) *errors.AppError {
	if len(ids) == 0 {
		return nil
	}
	n, err := s.repo.CountCoaches(ctx, ids)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to load coaches", err)
	}
	if n != len(ids) {
		return errors.NewAppError(errors.ErrInvalidInput, "One or more coaches not found", nil)
	}
	return nil
}

func (s *EventService) localize(e *entity.Event) *entity.Event {
	local := e.In(s.loc)
	return &local
}

func (s *EventService) publish(teamID *uuid.UUID, msgType string, data any) {
	if s.publisher == nil || teamID == nil {
		return
	}
	s.publisher.Publish(realtime.TeamRoom(*teamID), msgType, data)
}

func teamOf(e *entity.Event) uuid.UUID {
	if e.TeamID == nil {
		return uuid.Nil
	}
	return *e.TeamID
}

// scopeTeams intersects a requested team filter with the teams a caller may see.
func scopeTeams(requested, allowed []uuid.UUID) []uuid.UUID {
	if requested == nil {
		return append([]uuid.UUID{}, allowed...)
	}
	out := []uuid.UUID{}
	for _, id := range requested {
		if slices.Contains(allowed, id) {
			out = append(out, id)
		}
	}
	return out
}
