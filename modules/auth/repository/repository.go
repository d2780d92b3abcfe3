package repository

import (
	"club-api/core/constants"
	"club-api/core/database"
	"club-api/core/logger"
	"club-api/modules/auth/entity"
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// accountTables maps each role to the table holding its credentials.
var accountTables = map[string]string{
	constants.RoleAdmin:  "admins",
	constants.RoleCoach:  "coaches",
	constants.RolePlayer: "players",
	constants.RoleParent: "parents",
}

type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	GetByEmail(ctx context.Context, role, email string) (*entity.Account, error)
	GetByID(ctx context.Context, role string, id uuid.UUID) (*entity.Account, error)
	UpdatePassword(ctx context.Context, role string, id uuid.UUID, hash string) error
}

func table(role string) (string, error) {
	t, ok := accountTables[role]
	if !ok {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return t, nil
}

func (r *AuthRepository) GetByEmail(ctx context.Context, role, email string) (*entity.Account, error) {
	return r.get(ctx, role, "LOWER(email) = LOWER($1)", email)
}

func (r *AuthRepository) GetByID(ctx context.Context, role string, id uuid.UUID) (*entity.Account, error) {
	return r.get(ctx, role, "id = $1", id)
}

func (r *AuthRepository) get(ctx context.Context, role, where string, arg any) (*entity.Account, error) {
	t, err := table(role)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, email, password, first_name, last_name FROM %s WHERE %s`, t, where)

	var account entity.Account
	if err := r.DB.GetContext(ctx, &account, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:Get", err)
		return nil, err
	}
	account.Role = role
	return &account, nil
}

func (r *AuthRepository) UpdatePassword(ctx context.Context, role string, id uuid.UUID, hash string) error {
	t, err := table(role)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET password = $2, updated_at = NOW() WHERE id = $1`, t)
	if err := r.DB.ExecContext(ctx, query, id, hash); err != nil {
		logger.Error("AuthRepository:UpdatePassword", err)
		return err
	}
	return nil
}
