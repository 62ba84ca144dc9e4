package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/stockalert/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository stores the settings blob in PostgreSQL
type SettingsRepository struct {
	pool *pgxpool.Pool
	key  string
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool, key: models.SettingsKey}
}

// EnsureSchema creates the settings table if it does not exist
func (r *SettingsRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS app_settings (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create app_settings: %w", err)
	}
	return nil
}

// Load returns the stored settings merged onto the defaults. A missing row
// yields the defaults.
func (r *SettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	query := `SELECT value FROM app_settings WHERE key = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, r.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.DefaultSettings(), fmt.Errorf("failed to load settings: %w", err)
	}
	return DecodeSettings(r.key, raw)
}

// Save overwrites the stored settings
func (r *SettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	raw, err := EncodeSettings(settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, r.key, raw); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
