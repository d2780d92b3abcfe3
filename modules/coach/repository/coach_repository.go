package repository

import (
	"club-api/core/database"
	"club-api/core/logger"
	"club-api/modules/coach/entity"
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type CoachRepository struct {
	DB database.Database
}

func NewCoachRepository(db database.Database) *CoachRepository {
	return &CoachRepository{DB: db}
}

type CoachRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error)
	Teams(ctx context.Context, coachID uuid.UUID) ([]entity.CoachTeam, error)
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) error
}

func (r *CoachRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Coach, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, permission_level, profile_picture, created_at, updated_at
		FROM coaches
		WHERE id = $1
	`
	var coach entity.Coach
	if err := r.DB.GetContext(ctx, &coach, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CoachRepository:GetByID", err)
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) Teams(ctx context.Context, coachID uuid.UUID) ([]entity.CoachTeam, error) {
	query := `
		SELECT t.id, t.name, t.age_group, t.unique_code
		FROM team_coaches tc
		JOIN teams t ON t.id = tc.team_id
		WHERE tc.coach_id = $1
		ORDER BY t.name
	`
	teams := []entity.CoachTeam{}
	if err := r.DB.SelectContext(ctx, &teams, query, coachID); err != nil {
		logger.Error("CoachRepository:Teams", err)
		return nil, err
	}
	return teams, nil
}

func (r *CoachRepository) UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE coaches SET profile_picture = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, url); err != nil {
		logger.Error("CoachRepository:UpdateProfilePicture", err)
		return err
	}
	return nil
}
