package repository

import (
	"club-api/core/database"
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*TimesheetRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTimesheetRepository(database.New(sqlx.NewDb(db, "postgres"))), mock
}

func TestPlayerTeam(t *testing.T) {
	repo, mock := newRepo(t)
	playerID, teamID := uuid.New(), uuid.New()

	mock.ExpectQuery(`FROM players p\s+JOIN teams t`).
		WithArgs(playerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age_group", "unique_code"}).
			AddRow(teamID.String(), "U12 Falcons", "U12", "K7QX2M"))

	team, err := repo.PlayerTeam(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, teamID, team.ID)
	assert.Equal(t, "U12", *team.AgeGroup)

	mock.ExpectQuery(`FROM players p`).WillReturnError(sql.ErrNoRows)
	team, err = repo.PlayerTeam(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, team)
}

func TestParentLinked(t *testing.T) {
	repo, mock := newRepo(t)
	parentID, playerID := uuid.New(), uuid.New()

	mock.ExpectQuery(`FROM parent_players`).
		WithArgs(parentID, playerID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	linked, err := repo.ParentLinked(context.Background(), parentID, playerID)
	require.NoError(t, err)
	assert.True(t, linked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
