package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect creates a database connection based on configuration using sqlx
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName := "pgx"
	if cfg.IsSQLite() {
		driverName = "sqlite3"
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.IsSQLite() {
		// A single writer avoids "database is locked" on the file backend.
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate applies the schema found under migrationsDir/{sqlite,postgres}.
// migrationsDir is a filesystem path such as "migrations" or "../../migrations".
func Migrate(db *sqlx.DB, cfg config.DBConfig, migrationsDir string) error {
	var (
		m   *migrate.Migrate
		err error
	)

	if cfg.IsSQLite() {
		// Use driver instance directly to avoid DSN parsing issues with in-memory SQLite
		driver, derr := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if derr != nil {
			return fmt.Errorf("could not create sqlite driver: %w", derr)
		}
		m, err = migrate.NewWithDatabaseInstance("file://"+migrationsDir+"/sqlite", "sqlite3", driver)
	} else {
		driver, derr := postgres.WithInstance(db.DB, &postgres.Config{})
		if derr != nil {
			return fmt.Errorf("could not create postgres driver: %w", derr)
		}
		m, err = migrate.NewWithDatabaseInstance("file://"+migrationsDir+"/postgres", "postgres", driver)
	}
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
