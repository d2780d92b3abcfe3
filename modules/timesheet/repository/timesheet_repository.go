package repository

import (
	"club-api/core/database"
	"club-api/core/logger"
	eventEntity "club-api/modules/event/entity"
	"club-api/modules/timesheet/entity"
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// TimesheetRepository resolves who may see which team. Events themselves come
// from the event repository.
type TimesheetRepository struct {
	DB database.Database
}

func NewTimesheetRepository(db database.Database) *TimesheetRepository {
	return &TimesheetRepository{DB: db}
}

type TimesheetRepositoryInterface interface {
	PlayerTeam(ctx context.Context, playerID uuid.UUID) (*entity.Team, error)
	TeamCoaches(ctx context.Context, teamID uuid.UUID) ([]eventEntity.Coach, error)
	ParentLinked(ctx context.Context, parentID, playerID uuid.UUID) (bool, error)
}

func (r *TimesheetRepository) PlayerTeam(ctx context.Context, playerID uuid.UUID) (*entity.Team, error) {
	query := `
		SELECT t.id, t.name, t.age_group, t.unique_code
		FROM players p
		JOIN teams t ON t.id = p.team_id
		WHERE p.id = $1
	`

	var team entity.Team
	if err := r.DB.GetContext(ctx, &team, query, playerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TimesheetRepository:PlayerTeam", err)
		return nil, err
	}
	return &team, nil
}

func (r *TimesheetRepository) TeamCoaches(ctx context.Context, teamID uuid.UUID) ([]eventEntity.Coach, error) {
	query := `
		SELECT c.id, c.first_name, c.last_name, c.email, c.profile_picture
		FROM team_coaches tc
		JOIN coaches c ON c.id = tc.coach_id
		WHERE tc.team_id = $1
		ORDER BY c.first_name, c.last_name
	`

	coaches := []eventEntity.Coach{}
	if err := r.DB.SelectContext(ctx, &coaches, query, teamID); err != nil {
		logger.Error("TimesheetRepository:TeamCoaches", err)
		return nil, err
	}
	return coaches, nil
}

func (r *TimesheetRepository) ParentLinked(ctx context.Context, parentID, playerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM parent_players WHERE parent_id = $1 AND player_id = $2)`

	var linked bool
	if err := r.DB.GetContext(ctx, &linked, query, parentID, playerID); err != nil {
		logger.Error("TimesheetRepository:ParentLinked", err)
		return false, err
	}
	return linked, nil
}
