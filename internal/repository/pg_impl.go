package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgPreferenceRepository struct {
	db *sqlx.DB
}

func (r *pgPreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := r.db.GetContext(ctx, &value, "SELECT value FROM preferences WHERE key = $1", key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *pgPreferenceRepository) Set(ctx context.Context, key, value string) error {
	q := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}

func (r *pgPreferenceRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM preferences WHERE key = $1", key)
	return err
}

func (r *pgPreferenceRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.SelectContext(ctx, &keys, "SELECT key FROM preferences ORDER BY key"); err != nil {
		return nil, err
	}
	return keys, nil
}
