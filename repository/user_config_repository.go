package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"athanbot/database"
	"athanbot/models"

	"github.com/jackc/pgx/v5"
)

// UserConfigRepository implements the UserConfigRepository interface
type UserConfigRepository struct {
	q queryable
}

// NewUserConfigRepository creates a new user config repository
func NewUserConfigRepository(db *database.DB) *UserConfigRepository {
	return &UserConfigRepository{q: db.Pool}
}

// Get retrieves a user's personal configuration, nil when absent
func (r *UserConfigRepository) Get(ctx context.Context, userID int64) (*models.UserConfig, error) {
	query := `
		SELECT user_id, location, calculation_method, timezone, prayer_offsets, updated_at
		FROM user_configs
		WHERE user_id = $1
	`

	var (
		cfg          models.UserConfig
		locationJSON []byte
		offsetsJSON  []byte
	)
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&cfg.UserID,
		&locationJSON,
		&cfg.CalculationMethod,
		&cfg.Timezone,
		&offsetsJSON,
		&cfg.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config for user %d: %w", userID, err)
	}

	if len(locationJSON) > 0 {
		var decoded models.Location
		if err := json.Unmarshal(locationJSON, &decoded); err != nil {
			return nil, fmt.Errorf("failed to decode location for user %d: %w", userID, err)
		}
		cfg.Location = &decoded
	}
	if len(offsetsJSON) > 0 {
		if err := json.Unmarshal(offsetsJSON, &cfg.PrayerOffsets); err != nil {
			return nil, fmt.Errorf("failed to decode offsets for user %d: %w", userID, err)
		}
	}
	if cfg.PrayerOffsets == nil {
		cfg.PrayerOffsets = map[models.Prayer]int{}
	}

	return &cfg, nil
}

// Upsert saves a user's personal configuration, replacing the whole row
func (r *UserConfigRepository) Upsert(ctx context.Context, cfg *models.UserConfig) error {
	var locationJSON []byte
	if cfg.Location != nil {
		encoded, err := json.Marshal(cfg.Location)
		if err != nil {
			return fmt.Errorf("failed to encode location for user %d: %w", cfg.UserID, err)
		}
		locationJSON = encoded
	}

	offsets := cfg.PrayerOffsets
	if offsets == nil {
		offsets = map[models.Prayer]int{}
	}
	offsetsJSON, err := json.Marshal(offsets)
	if err != nil {
		return fmt.Errorf("failed to encode offsets for user %d: %w", cfg.UserID, err)
	}

	query := `
		INSERT INTO user_configs (user_id, location, calculation_method, timezone, prayer_offsets)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			location = EXCLUDED.location,
			calculation_method = EXCLUDED.calculation_method,
			timezone = EXCLUDED.timezone,
			prayer_offsets = EXCLUDED.prayer_offsets,
			updated_at = NOW()
	`

	_, err = r.q.Exec(ctx, query,
		cfg.UserID,
		locationJSON,
		cfg.CalculationMethod,
		cfg.Timezone,
		offsetsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert config for user %d: %w", cfg.UserID, err)
	}

	return nil
}
