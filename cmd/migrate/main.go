package main

import (
	"flag"
	"log"
	"strings"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, steps, force, or version")
		dir     = flag.String("dir", "migrations", "Directory holding the sqlite and postgres migrations")
		n       = flag.Int("n", 0, "Step count for 'steps' (negative rolls back) or version for 'force'")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.DB.Type == config.DBTypeMemory {
		logger.Fatal("In-memory databases are migrated by the app on startup")
	}

	var sourceURL, databaseURL string
	if cfg.DB.IsSQLite() {
		sourceURL = "file://" + *dir + "/sqlite"
		databaseURL = "sqlite3://" + strings.TrimPrefix(cfg.DB.DSN(), "file:")
	} else {
		sourceURL = "file://" + *dir + "/postgres"
		databaseURL = cfg.DB.DSN()
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		logger.Fatal("Failed to create migration instance", zap.Error(err))
	}
	defer m.Close()

	switch *command {
	case "up":
		logger.Info("Running migrations UP")
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		logger.Info("Running migrations DOWN")
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Migration down failed", zap.Error(err))
		}
	case "steps":
		if *n == 0 {
			logger.Fatal("Flag -n is required for steps")
		}
		logger.Info("Running migration steps", zap.Int("n", *n))
		if err := m.Steps(*n); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Migration steps failed", zap.Error(err))
		}
	case "force":
		logger.Warn("Forcing migration version", zap.Int("version", *n))
		if err := m.Force(*n); err != nil {
			logger.Fatal("Migration force failed", zap.Error(err))
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			logger.Fatal("Failed to get version", zap.Error(err))
		}
		logger.Info("Migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	default:
		logger.Fatal("Unknown command", zap.String("command", *command))
	}

	logger.Info("Migration command completed successfully")
}
