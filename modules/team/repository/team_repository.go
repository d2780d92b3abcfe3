package repository

import (
	"club-api/core/constants"
	"club-api/core/database"
	coreEntity "club-api/core/entity"
	"club-api/core/logger"
	"club-api/core/params"
	"club-api/modules/team/entity"
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrCodeTaken reports a unique_code collision on insert.
var ErrCodeTaken = stdErrors.New("team code already in use")

const uniqueViolation = "23505"

type TeamRepository struct {
	DB database.Database
}

func NewTeamRepository(db database.Database) *TeamRepository {
	return &TeamRepository{DB: db}
}

type TeamRepositoryInterface interface {
	Create(ctx context.Context, team *entity.Team, coachIDs []uuid.UUID) (*entity.Team, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	GetByCode(ctx context.Context, code string) (*entity.Team, error)
	List(ctx context.Context, p params.QueryParams) (*coreEntity.Pagination[entity.Team], error)
	Update(ctx context.Context, team *entity.Team, coachIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Players(ctx context.Context, teamID uuid.UUID) ([]entity.Player, error)
	IsMember(ctx context.Context, role string, userID, teamID uuid.UUID) (bool, error)
}

func (r *TeamRepository) Create(ctx context.Context, team *entity.Team, coachIDs []uuid.UUID) (*entity.Team, error) {
	query := `
		INSERT INTO teams (name, age_group, unique_code)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id uuid.UUID
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &id, query, team.Name, team.AgeGroup, team.UniqueCode); err != nil {
			return err
		}
		return insertCoaches(ctx, tx, id, coachIDs)
	})
	if err != nil {
		var pqErr *pq.Error
		if stdErrors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "teams_unique_code_key" {
			return nil, ErrCodeTaken
		}
		logger.Error("TeamRepository:Create", err)
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TeamRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM teams WHERE unique_code = $1)`, code)
	if err != nil {
		logger.Error("TeamRepository:CodeExists", err)
		return false, err
	}
	return exists, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *TeamRepository) GetByCode(ctx context.Context, code string) (*entity.Team, error) {
	return r.getOne(ctx, "unique_code = $1", code)
}

func (r *TeamRepository) getOne(ctx context.Context, cond string, arg any) (*entity.Team, error) {
	query := `
		SELECT id, name, age_group, unique_code, created_at, updated_at
		FROM teams
		WHERE ` + cond

	var team entity.Team
	if err := r.DB.GetContext(ctx, &team, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamRepository:GetOne", err)
		return nil, err
	}

	teams := []entity.Team{team}
	if err := r.attachCoaches(ctx, teams); err != nil {
		return nil, err
	}
	return &teams[0], nil
}

func (r *TeamRepository) List(ctx context.Context, p params.QueryParams) (*coreEntity.Pagination[entity.Team], error) {
	where := ""
	args := []any{}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		where = fmt.Sprintf(" WHERE name ILIKE $%d OR unique_code ILIKE $%d", len(args), len(args))
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, "SELECT COUNT(*) FROM teams"+where, args...); err != nil {
		logger.Error("TeamRepository:List:Count", err)
		return nil, err
	}

	query := `
		SELECT id, name, age_group, unique_code, created_at, updated_at
		FROM teams` + where + fmt.Sprintf(`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	teams := []entity.Team{}
	if err := r.DB.SelectContext(ctx, &teams, query, args...); err != nil {
		logger.Error("TeamRepository:List:Select", err)
		return nil, err
	}
	if err := r.attachCoaches(ctx, teams); err != nil {
		return nil, err
	}
	return coreEntity.NewPagination(teams, total, p.PageNumber, p.PageSize), nil
}

// Update rewrites name and age group. A nil coachIDs keeps the current coaches.
func (r *TeamRepository) Update(ctx context.Context, team *entity.Team, coachIDs []uuid.UUID) error {
	query := `
		UPDATE teams
		SET name = $2, age_group = $3, updated_at = NOW()
		WHERE id = $1
	`
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, team.ID, team.Name, team.AgeGroup)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sql.ErrNoRows
		}
		if coachIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM team_coaches WHERE team_id = $1`, team.ID); err != nil {
			return err
		}
		return insertCoaches(ctx, tx, team.ID, coachIDs)
	})
	if err != nil {
		logger.Error("TeamRepository:Update", err)
	}
	return err
}

// Delete removes the team. Its events stay, detached from any team.
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmts := []string{
			`DELETE FROM team_coaches WHERE team_id = $1`,
			`UPDATE players SET team_id = NULL WHERE team_id = $1`,
			`UPDATE events SET team_id = NULL WHERE team_id = $1`,
			`DELETE FROM teams WHERE id = $1`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("TeamRepository:Delete", err)
	}
	return err
}

func (r *TeamRepository) Players(ctx context.Context, teamID uuid.UUID) ([]entity.Player, error) {
	query := `
		SELECT id, first_name, last_name, jersey_number
		FROM players
		WHERE team_id = $1
		ORDER BY last_name, first_name
	`
	players := []entity.Player{}
	if err := r.DB.SelectContext(ctx, &players, query, teamID); err != nil {
		logger.Error("TeamRepository:Players", err)
		return nil, err
	}
	return players, nil
}

// IsMember reports whether the user belongs to the team in the given role.
// Parents belong through any linked player.
func (r *TeamRepository) IsMember(ctx context.Context, role string, userID, teamID uuid.UUID) (bool, error) {
	var query string
	switch role {
	case constants.RoleAdmin:
		return true, nil
	case constants.RoleCoach:
		query = `SELECT EXISTS (SELECT 1 FROM team_coaches WHERE coach_id = $1 AND team_id = $2)`
	case constants.RolePlayer:
		query = `SELECT EXISTS (SELECT 1 FROM players WHERE id = $1 AND team_id = $2)`
	case constants.RoleParent:
		query = `
			SELECT EXISTS (
				SELECT 1 FROM parent_players pp
				JOIN players p ON p.id = pp.player_id
				WHERE pp.parent_id = $1 AND p.team_id = $2
			)`
	default:
		return false, nil
	}

	var member bool
	if err := r.DB.GetContext(ctx, &member, query, userID, teamID); err != nil {
		logger.Error("TeamRepository:IsMember", err)
		return false, err
	}
	return member, nil
}

func (r *TeamRepository) attachCoaches(ctx context.Context, teams []entity.Team) error {
	if len(teams) == 0 {
		return nil
	}
	ids := make([]string, len(teams))
	for i := range teams {
		ids[i] = teams[i].ID.String()
	}

	query := `
		SELECT tc.team_id, c.id, c.first_name, c.last_name, c.email, c.profile_picture
		FROM team_coaches tc
		JOIN coaches c ON c.id = tc.coach_id
		WHERE tc.team_id = ANY($1::uuid[])
		ORDER BY c.first_name, c.last_name
	`
	var rows []entity.TeamCoach
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		logger.Error("TeamRepository:AttachCoaches", err)
		return err
	}

	byTeam := map[uuid.UUID][]entity.TeamCoach{}
	for _, row := range rows {
		byTeam[row.TeamID] = append(byTeam[row.TeamID], row)
	}
	for i := range teams {
		teams[i].Coaches = teams[i].Coaches[:0]
		for _, row := range byTeam[teams[i].ID] {
			teams[i].Coaches = append(teams[i].Coaches, row.Coach)
		}
	}
	return nil
}

func insertCoaches(ctx context.Context, tx *sqlx.Tx, teamID uuid.UUID, coachIDs []uuid.UUID) error {
	if len(coachIDs) == 0 {
		return nil
	}
	ids := make([]string, len(coachIDs))
	for i, id := range coachIDs {
		ids[i] = id.String()
	}
	query := `
		INSERT INTO team_coaches (team_id, coach_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	_, err := tx.ExecContext(ctx, query, teamID, pq.Array(ids))
	return err
}
