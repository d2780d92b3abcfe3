package database

import (
	"club-api/core/config"
	"club-api/core/constants"
	"club-api/core/logger"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type IDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	SQLx() *sqlx.DB
}

type Database struct {
	sqlx *sqlx.DB
}

// requiredTables are checked at startup; a missing one is logged, not fatal.
var requiredTables = []string{"admins", "coaches", "players", "parents", "teams", "team_coaches", "events", "event_coaches"}

// New wraps an existing connection. Tests use it with sqlmock.
func New(db *sqlx.DB) Database {
	return Database{sqlx: db}
}

func InitDB(cfg config.DatabaseConfig) (Database, error) {
	logger.Info("Database:Init", "host", cfg.Host, "database", cfg.Name)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = constants.DatabaseSSLMode
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)

	sqlxDB, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Error("Database:Init:Connect", "error", err)
		return Database{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	maxOpen, maxIdle, lifetime := cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime
	if maxOpen <= 0 {
		maxOpen = constants.DatabaseMaxOpenConns
	}
	if maxIdle <= 0 {
		maxIdle = constants.DatabaseMaxIdleConns
	}
	if lifetime <= 0 {
		lifetime = constants.DatabaseConnMaxLifetime
	}
	sqlxDB.SetMaxOpenConns(maxOpen)
	sqlxDB.SetMaxIdleConns(maxIdle)
	sqlxDB.SetConnMaxLifetime(time.Duration(lifetime) * time.Minute)

	db := New(sqlxDB)
	db.checkSchema(context.Background())

	logger.Info("Database:Init:Done",
		"maxOpenConns", maxOpen,
		"maxIdleConns", maxIdle,
		"connMaxLifetime", lifetime,
	)
	return db, nil
}

func (d Database) checkSchema(ctx context.Context) {
	var present []string
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ANY($1)
	`
	if err := d.sqlx.SelectContext(ctx, &present, query, pq.Array(requiredTables)); err != nil {
		logger.Error("Database:CheckSchema", "error", err)
		return
	}

	found := make(map[string]bool, len(present))
	for _, name := range present {
		found[name] = true
	}
	for _, name := range requiredTables {
		if !found[name] {
			logger.Warn("Database:CheckSchema:MissingTable", "table", name)
		}
	}
}

func (d Database) Close() error {
	return d.sqlx.Close()
}

func (d Database) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := d.sqlx.ExecContext(ctx, query, args...)
	return err
}

func (d Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.GetContext(ctx, dest, query, args...)
}

func (d Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.SelectContext(ctx, dest, query, args...)
}

func (d Database) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.sqlx.QueryRowContext(ctx, query, args...)
}

func (d Database) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	return d.sqlx.NamedExecContext(ctx, query, arg)
}

// WithTx runs fn in a transaction, rolling back when fn fails.
func (d Database) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.sqlx.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Database:WithTx:Rollback", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (d Database) SQLx() *sqlx.DB {
	return d.sqlx
}
