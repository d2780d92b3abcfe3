package repository

import (
	"club-api/core/database"
	"club-api/core/logger"
	"club-api/core/schedule"
	"club-api/modules/event/entity"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const eventColumns = `
	e.id, e.team_id, e.event_type, e.name, e.start_date, e.end_date, e.start_time, e.end_time,
	e.location, e.address, e.notes, e.event_link, e.gamechanger_link, e.is_recurring,
	e.repeat_pattern, e.repeat_days, e.end_recurrence_count, e.end_recurrence_date,
	e.created_at, e.updated_at, t.name AS team_name`

// EventFilter narrows FindOverlapping. Nil TeamIDs means every team; an empty
// non-nil slice matches nothing.
type EventFilter struct {
	TeamIDs []uuid.UUID
	CoachID *uuid.UUID
}

type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event, coachIDs []uuid.UUID) (*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event, coachIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetCoaches(ctx context.Context, eventID uuid.UUID, coachIDs []uuid.UUID) error
	FindOverlapping(ctx context.Context, filter EventFilter, w schedule.Window) ([]entity.Event, error)

	GetCoachAccount(ctx context.Context, id uuid.UUID) (*entity.CoachAccount, error)
	CoachTeamIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error)
	TeamExists(ctx context.Context, id uuid.UUID) (bool, error)
	CountCoaches(ctx context.Context, ids []uuid.UUID) (int, error)
}

// ===================== Event CRUD =====================

func (r *EventRepository) Create(ctx context.Context, event *entity.Event, coachIDs []uuid.UUID) (*entity.Event, error) {
	query := `
		INSERT INTO events (team_id, event_type, name, start_date, end_date, start_time, end_time,
		                    location, address, notes, event_link, gamechanger_link, is_recurring,
		                    repeat_pattern, repeat_days, end_recurrence_count, end_recurrence_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	var id uuid.UUID
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &id, query,
			event.TeamID, event.EventType, event.Name, event.StartDate, event.EndDate,
			event.StartTime, event.EndTime, event.Location, event.Address, event.Notes,
			event.EventLink, event.GamechangerLink, event.IsRecurring, event.RepeatPattern,
			event.RepeatDays, event.EndRecurrenceCount, event.EndRecurrenceDate); err != nil {
			return err
		}
		return insertCoaches(ctx, tx, id, coachIDs)
	})
	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT` + eventColumns + `
		FROM events e
		LEFT JOIN teams t ON t.id = e.team_id
		WHERE e.id = $1
	`

	var event entity.Event
	if err := r.DB.GetContext(ctx, &event, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}

	events := []entity.Event{event}
	if err := r.attachCoaches(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

// Update rewrites the event row. A nil coachIDs keeps the current coaches.
func (r *EventRepository) Update(ctx context.Context, event *entity.Event, coachIDs []uuid.UUID) error {
	query := `
		UPDATE events
		SET team_id = $2, event_type = $3, name = $4, start_date = $5, end_date = $6,
		    start_time = $7, end_time = $8, location = $9, address = $10, notes = $11,
		    event_link = $12, gamechanger_link = $13, is_recurring = $14, repeat_pattern = $15,
		    repeat_days = $16, end_recurrence_count = $17, end_recurrence_date = $18,
		    updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			event.ID, event.TeamID, event.EventType, event.Name, event.StartDate, event.EndDate,
			event.StartTime, event.EndTime, event.Location, event.Address, event.Notes,
			event.EventLink, event.GamechangerLink, event.IsRecurring, event.RepeatPattern,
			event.RepeatDays, event.EndRecurrenceCount, event.EndRecurrenceDate)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sql.ErrNoRows
		}
		if coachIDs == nil {
			return nil
		}
		return replaceCoaches(ctx, tx, event.ID, coachIDs)
	})
	if err != nil {
		logger.Error("EventRepository:Update", err)
	}
	return err
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_coaches WHERE event_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
		return err
	})
	if err != nil {
		logger.Error("EventRepository:Delete", err)
	}
	return err
}

func (r *EventRepository) SetCoaches(ctx context.Context, eventID uuid.UUID, coachIDs []uuid.UUID) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		return replaceCoaches(ctx, tx, eventID, coachIDs)
	})
	if err != nil {
		logger.Error("EventRepository:SetCoaches", err)
	}
	return err
}

func replaceCoaches(ctx context.Context, tx *sqlx.Tx, eventID uuid.UUID, coachIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_coaches WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	return insertCoaches(ctx, tx, eventID, coachIDs)
}

func insertCoaches(ctx context.Context, tx *sqlx.Tx, eventID uuid.UUID, coachIDs []uuid.UUID) error {
	if len(coachIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO event_coaches (event_id, coach_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	_, err := tx.ExecContext(ctx, query, eventID, pq.Array(uuidStrings(coachIDs)))
	return err
}

// ===================== Window query =====================

// FindOverlapping is the coarse pre-filter of a window query: single events
// starting inside w, and recurring events that started before w ends and whose
// end_recurrence_date is not before w's first day. Expansion trims the rest.
func (r *EventRepository) FindOverlapping(ctx context.Context, filter EventFilter, w schedule.Window) ([]entity.Event, error) {
	if filter.TeamIDs != nil && len(filter.TeamIDs) == 0 {
		return []entity.Event{}, nil
	}

	args := []any{w.Start, w.End, schedule.StartOfDay(w.Start)}
	conds := []string{`(
		(e.is_recurring = false AND e.start_date BETWEEN $1 AND $2)
		OR (e.is_recurring = true AND e.start_date <= $2
		    AND (e.end_recurrence_date IS NULL OR e.end_recurrence_date >= $3))
	)`}
	if filter.TeamIDs != nil {
		args = append(args, pq.Array(uuidStrings(filter.TeamIDs)))
		conds = append(conds, fmt.Sprintf("e.team_id = ANY($%d::uuid[])", len(args)))
	}
	if filter.CoachID != nil {
		args = append(args, *filter.CoachID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM event_coaches ec WHERE ec.event_id = e.id AND ec.coach_id = $%d)", len(args)))
	}

	query := `SELECT` + eventColumns + `
		FROM events e
		LEFT JOIN teams t ON t.id = e.team_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY e.start_date ASC
	`

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, args...); err != nil {
		logger.Error("EventRepository:FindOverlapping", err)
		return nil, err
	}
	if err := r.attachCoaches(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) attachCoaches(ctx context.Context, events []entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}

	query := `
		SELECT ec.event_id, c.id, c.first_name, c.last_name, c.email, c.profile_picture
		FROM event_coaches ec
		JOIN coaches c ON c.id = ec.coach_id
		WHERE ec.event_id = ANY($1::uuid[])
		ORDER BY c.first_name, c.last_name
	`
	var rows []entity.EventCoach
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(ids))); err != nil {
		logger.Error("EventRepository:AttachCoaches", err)
		return err
	}

	byEvent := make(map[uuid.UUID][]entity.Coach, len(events))
	for _, row := range rows {
		byEvent[row.EventID] = append(byEvent[row.EventID], row.Coach)
	}
	for i := range events {
		events[i].Coaches = byEvent[events[i].ID]
		if events[i].Coaches == nil {
			events[i].Coaches = []entity.Coach{}
		}
	}
	return nil
}

// ===================== Lookups =====================

func (r *EventRepository) GetCoachAccount(ctx context.Context, id uuid.UUID) (*entity.CoachAccount, error) {
	var acc entity.CoachAccount
	err := r.DB.GetContext(ctx, &acc, `SELECT id, permission_level FROM coaches WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetCoachAccount", err)
		return nil, err
	}
	return &acc, nil
}

func (r *EventRepository) CoachTeamIDs(ctx context.Context, coachID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.DB.SelectContext(ctx, &ids, `SELECT team_id FROM team_coaches WHERE coach_id = $1`, coachID)
	if err != nil {
		logger.Error("EventRepository:CoachTeamIDs", err)
		return nil, err
	}
	return ids, nil
}

func (r *EventRepository) TeamExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1)`, id)
	if err != nil {
		logger.Error("EventRepository:TeamExists", err)
		return false, err
	}
	return exists, nil
}

func (r *EventRepository) CountCoaches(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM coaches WHERE id = ANY($1::uuid[])`, pq.Array(uuidStrings(ids)))
	if err != nil {
		logger.Error("EventRepository:CountCoaches", err)
		return 0, err
	}
	return n, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
