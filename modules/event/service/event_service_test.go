package service

import (
	"club-api/core/constants"
	coreEntity "club-api/core/entity"
	"club-api/core/errors"
	"club-api/core/realtime"
	"club-api/core/schedule"
	"club-api/modules/event/dto"
	"club-api/modules/event/entity"
	"club-api/modules/event/repository"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	events      map[uuid.UUID]*entity.Event
	coaches     map[uuid.UUID]entity.CoachAccount
	coachTeams  map[uuid.UUID][]uuid.UUID
	teams       map[uuid.UUID]bool
	lastFilter  repository.EventFilter
	lastWindow  schedule.Window
	createdWith []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:     map[uuid.UUID]*entity.Event{},
		coaches:    map[uuid.UUID]entity.CoachAccount{},
		coachTeams: map[uuid.UUID][]uuid.UUID{},
		teams:      map[uuid.UUID]bool{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, e *entity.Event, coachIDs []uuid.UUID) (*entity.Event, error) {
	e.ID = uuid.New()
	f.createdWith = coachIDs
	for _, id := range coachIDs {
		e.Coaches = append(e.Coaches, entity.Coach{ID: id})
	}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, e *entity.Event, coachIDs []uuid.UUID) error {
	old := f.events[e.ID]
	if coachIDs == nil {
		e.Coaches = old.Coaches
	}
	f.events[e.ID] = e
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) SetCoaches(ctx context.Context, id uuid.UUID, coachIDs []uuid.UUID) error {
	e := f.events[id]
	e.Coaches = nil
	for _, c := range coachIDs {
		e.Coaches = append(e.Coaches, entity.Coach{ID: c})
	}
	return nil
}

func (f *fakeRepo) FindOverlapping(ctx context.Context, filter repository.EventFilter, w schedule.Window) ([]entity.Event, error) {
	f.lastFilter, f.lastWindow = filter, w
	out := []entity.Event{}
	for _, e := range f.events {
		if filter.TeamIDs != nil && (e.TeamID == nil || !contains(filter.TeamIDs, *e.TeamID)) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) GetCoachAccount(ctx context.Context, id uuid.UUID) (*entity.CoachAccount, error) {
	acc, ok := f.coaches[id]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (f *fakeRepo) CoachTeamIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return append([]uuid.UUID{}, f.coachTeams[id]...), nil
}

func (f *fakeRepo) TeamExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.teams[id], nil
}

func (f *fakeRepo) CountCoaches(ctx context.Context, ids []uuid.UUID) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := f.coaches[id]; ok {
			n++
		}
	}
	return n, nil
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

type published struct {
	room, kind string
}

type fakePublisher struct {
	sent []published
}

func (p *fakePublisher) Publish(room, msgType string, data any) {
	p.sent = append(p.sent, published{room, msgType})
}

var (
	admin = coreEntity.Actor{ID: uuid.New(), Role: constants.RoleAdmin}
	june  = time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
)

func newService(repo *fakeRepo, pub *fakePublisher) *EventService {
	s := NewEventService(repo, pub, time.UTC)
	s.now = func() time.Time { return june }
	return s
}

func practiceRequest(teamID uuid.UUID) *dto.EventRequest {
	return &dto.EventRequest{
		TeamID:        teamID.String(),
		EventType:     "Practice",
		Name:          "Practice",
		StartDate:     "2024-06-04",
		StartTime:     "17:30",
		EndTime:       "19:00",
		Address:       "1200 Ballpark Rd",
		IsRecurring:   true,
		RepeatPattern: "Weekly",
		RepeatDays:    []string{"Tue", "Thu"},
	}
}

func TestCreateEvent_AdminPublishesToTeamRoom(t *testing.T) {
	repo, pub := newFakeRepo(), &fakePublisher{}
	teamID := uuid.New()
	repo.teams[teamID] = true

	resp, appErr := newService(repo, pub).CreateEvent(context.Background(), admin, practiceRequest(teamID))
	require.Nil(t, appErr)

	assert.Equal(t, time.Date(2024, 6, 4, 17, 30, 0, 0, time.UTC), resp.StartDate)
	assert.Equal(t, []string{"Tue", "Thu"}, resp.RepeatDays)
	assert.Equal(t, []published{{realtime.TeamRoom(teamID), realtime.TypeEventCreated}}, pub.sent)
}

func TestCreateEvent_UnknownTeam(t *testing.T) {
	_, appErr := newService(newFakeRepo(), &fakePublisher{}).CreateEvent(context.Background(), admin, practiceRequest(uuid.New()))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCreateEvent_CoachRules(t *testing.T) {
	repo := newFakeRepo()
	teamID, otherTeam := uuid.New(), uuid.New()
	repo.teams[teamID], repo.teams[otherTeam] = true, true

	full := coreEntity.Actor{ID: uuid.New(), Role: constants.RoleCoach}
	readOnly := coreEntity.Actor{ID: uuid.New(), Role: constants.RoleCoach}
	repo.coaches[full.ID] = entity.CoachAccount{ID: full.ID, PermissionLevel: constants.PermissionFull}
	repo.coaches[readOnly.ID] = entity.CoachAccount{ID: readOnly.ID, PermissionLevel: constants.PermissionReadOnly}
	repo.coachTeams[full.ID] = []uuid.UUID{teamID}
	repo.coachTeams[readOnly.ID] = []uuid.UUID{teamID}
	svc := newService(repo, &fakePublisher{})

	_, appErr := svc.CreateEvent(context.Background(), readOnly, practiceRequest(teamID))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = svc.CreateEvent(context.Background(), full, practiceRequest(otherTeam))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	resp, appErr := svc.CreateEvent(context.Background(), full, practiceRequest(teamID))
	require.Nil(t, appErr)
	assert.Equal(t, []uuid.UUID{full.ID}, repo.createdWith)
	require.Len(t, resp.Coaches, 1)
}

func TestCreateEvent_UnknownCoach(t *testing.T) {
	repo := newFakeRepo()
	teamID := uuid.New()
	repo.teams[teamID] = true

	req := practiceRequest(teamID)
	req.CoachIDs = []string{uuid.NewString()}
	_, appErr := newService(repo, &fakePublisher{}).CreateEvent(context.Background(), admin, req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func seedWeekly(repo *fakeRepo, teamID uuid.UUID) *entity.Event {
	pattern := "Weekly"
	e := &entity.Event{
		TeamID:      &teamID,
		EventType:   entity.EventTypePractice,
		Name:        "Practice",
		StartDate:   time.Date(2024, 5, 7, 17, 30, 0, 0, time.UTC),
		StartTime:   "17:30",
		EndTime:     "19:00",
		IsRecurring: true,
		RepeatDays:  pq.StringArray{"Tue", "Wed"},
	}
	e.RepeatPattern = &pattern
	e.ID = uuid.New()
	repo.events[e.ID] = e
	return e
}

func TestGetEvents_MonthAndToday(t *testing.T) {
	repo := newFakeRepo()
	teamID := uuid.New()
	seedWeekly(repo, teamID)

	resp, appErr := newService(repo, &fakePublisher{}).GetEvents(context.Background(), admin, &dto.WindowQuery{})
	require.Nil(t, appErr)

	// June 2024 has four Tuesdays and four Wednesdays; June 12 is a Wednesday.
	assert.Len(t, resp.MonthlyEvents, 8)
	require.Len(t, resp.TodayEvents, 1)
	assert.Equal(t, time.Date(2024, 6, 12, 17, 30, 0, 0, time.UTC), resp.TodayEvents[0].StartDate)
	assert.Equal(t, schedule.MonthBounds(june), repo.lastWindow)
	assert.Nil(t, repo.lastFilter.TeamIDs)
}

func TestGetEvents_ExplicitDate(t *testing.T) {
	repo := newFakeRepo()
	seedWeekly(repo, uuid.New())

	resp, appErr := newService(repo, &fakePublisher{}).GetEvents(context.Background(), admin, &dto.WindowQuery{Date: "2024-07-02"})
	require.Nil(t, appErr)
	assert.Len(t, resp.MonthlyEvents, 10)
	assert.Len(t, resp.TodayEvents, 1)

	_, appErr = newService(repo, &fakePublisher{}).GetEvents(context.Background(), admin, &dto.WindowQuery{Date: "July"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetEvents_CoachScope(t *testing.T) {
	repo := newFakeRepo()
	mine, theirs := uuid.New(), uuid.New()
	seedWeekly(repo, mine)
	seedWeekly(repo, theirs)
	coach := coreEntity.Actor{ID: uuid.New(), Role: constants.RoleCoach}
	repo.coachTeams[coach.ID] = []uuid.UUID{mine}
	svc := newService(repo, &fakePublisher{})

	resp, appErr := svc.GetEvents(context.Background(), coach, &dto.WindowQuery{})
	require.Nil(t, appErr)
	assert.Len(t, resp.MonthlyEvents, 8)

	resp, appErr = svc.GetEvents(context.Background(), coach, &dto.WindowQuery{TeamID: theirs.String()})
	require.Nil(t, appErr)
	assert.Empty(t, resp.MonthlyEvents)
	assert.Empty(t, resp.TodayEvents)
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	repo, pub := newFakeRepo(), &fakePublisher{}
	teamID := uuid.New()
	repo.teams[teamID] = true
	existing := seedWeekly(repo, teamID)
	existing.Coaches = []entity.Coach{{ID: uuid.New()}}
	svc := newService(repo, pub)

	req := practiceRequest(teamID)
	req.Name = "Late practice"
	resp, appErr := svc.UpdateEvent(context.Background(), admin, existing.ID, req)
	require.Nil(t, appErr)
	assert.Equal(t, "Late practice", resp.Name)
	assert.Len(t, resp.Coaches, 1)

	require.Nil(t, svc.DeleteEvent(context.Background(), admin, existing.ID))
	_, appErr = svc.GetEvent(context.Background(), admin, existing.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	assert.Equal(t, []published{
		{realtime.TeamRoom(teamID), realtime.TypeEventUpdated},
		{realtime.TeamRoom(teamID), realtime.TypeEventDeleted},
	}, pub.sent)
}

func TestUpdateEventCoaches(t *testing.T) {
	repo := newFakeRepo()
	existing := seedWeekly(repo, uuid.New())
	coachID := uuid.New()
	repo.coaches[coachID] = entity.CoachAccount{ID: coachID, PermissionLevel: constants.PermissionFull}

	resp, appErr := newService(repo, &fakePublisher{}).UpdateEventCoaches(context.Background(), admin, existing.ID,
		&dto.UpdateCoachesRequest{CoachIDs: []string{coachID.String()}})
	require.Nil(t, appErr)
	require.Len(t, resp.Coaches, 1)
	assert.Equal(t, coachID.String(), resp.Coaches[0].ID)
}

func TestDailyDigests_OnePerCoach(t *testing.T) {
	repo := newFakeRepo()
	e := seedWeekly(repo, uuid.New())
	location := "Field 2"
	e.Location = &location
	e.Coaches = []entity.Coach{
		{ID: uuid.New(), FirstName: "Dana", Email: "dana@example.com"},
		{ID: uuid.New(), FirstName: "Sam", Email: ""},
	}

	msgs, err := newService(repo, &fakePublisher{}).DailyDigests(context.Background(), june)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"dana@example.com"}, msgs[0].To)
	assert.Contains(t, msgs[0].Subject, "Wednesday, June 12, 2024")
	assert.Contains(t, msgs[0].Body, "5:30 PM")
	assert.Contains(t, msgs[0].Body, "Field 2")

	msgs, err = newService(repo, &fakePublisher{}).DailyDigests(context.Background(), time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
