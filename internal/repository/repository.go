package repository

import (
	"context"
	"errors"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/jmoiron/sqlx"
)

// Keys of the persisted dashboard state
const (
	KeySearchHistory = "searchHistory"
	KeySearchCity    = "searchCity"
	KeyAlertPrefs    = "alertPrefs"
)

// ErrNotFound is returned when no value is stored under a key
var ErrNotFound = errors.New("preference not found")

// PreferenceRepository stores small string values by key
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Container holds all repositories
type Container struct {
	Preferences PreferenceRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Preferences: &pgPreferenceRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		Preferences: &sqlitePreferenceRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether nothing has been persisted yet (used by main)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM preferences"
	err := db.GetContext(ctx, &count, query)
	if err != nil {
		return true, err
	}
	return count == 0, nil
}
