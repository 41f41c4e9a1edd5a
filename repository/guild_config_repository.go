package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"athanbot/database"
	"athanbot/models"

	"github.com/jackc/pgx/v5"
)

// GuildConfigRepository implements the GuildConfigRepository interface
type GuildConfigRepository struct {
	q queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

// Get retrieves a guild's configuration, nil when the guild never ran setup
func (r *GuildConfigRepository) Get(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	query := `
		SELECT guild_id, location, calculation_method, timezone,
		       channel_id, voice_channel_id, ping_role_id,
		       enabled_prayers, prayer_offsets, updated_at
		FROM guild_configs
		WHERE guild_id = $1
	`

	var (
		cfg          models.GuildConfig
		locationJSON []byte
		prayersJSON  []byte
		offsetsJSON  []byte
	)
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&cfg.GuildID,
		&locationJSON,
		&cfg.CalculationMethod,
		&cfg.Timezone,
		&cfg.ChannelID,
		&cfg.VoiceChannelID,
		&cfg.PingRoleID,
		&prayersJSON,
		&offsetsJSON,
		&cfg.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config for guild %d: %w", guildID, err)
	}

	if err := unmarshalConfigColumns(locationJSON, prayersJSON, offsetsJSON,
		&cfg.Location, &cfg.EnabledPrayers, &cfg.PrayerOffsets); err != nil {
		return nil, fmt.Errorf("failed to decode config for guild %d: %w", guildID, err)
	}

	return &cfg, nil
}

// Upsert saves a guild's configuration, replacing the whole row.
// Partial updates are the caller's responsibility (load, modify, save).
func (r *GuildConfigRepository) Upsert(ctx context.Context, cfg *models.GuildConfig) error {
	locationJSON, prayersJSON, offsetsJSON, err := marshalConfigColumns(
		cfg.Location, cfg.EnabledPrayers, cfg.PrayerOffsets)
	if err != nil {
		return fmt.Errorf("failed to encode config for guild %d: %w", cfg.GuildID, err)
	}

	query := `
		INSERT INTO guild_configs (
			guild_id, location, calculation_method, timezone,
			channel_id, voice_channel_id, ping_role_id,
			enabled_prayers, prayer_offsets
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (guild_id) DO UPDATE SET
			location = EXCLUDED.location,
			calculation_method = EXCLUDED.calculation_method,
			timezone = EXCLUDED.timezone,
			channel_id = EXCLUDED.channel_id,
			voice_channel_id = EXCLUDED.voice_channel_id,
			ping_role_id = EXCLUDED.ping_role_id,
			enabled_prayers = EXCLUDED.enabled_prayers,
			prayer_offsets = EXCLUDED.prayer_offsets,
			updated_at = NOW()
	`

	_, err = r.q.Exec(ctx, query,
		cfg.GuildID,
		locationJSON,
		cfg.CalculationMethod,
		cfg.Timezone,
		cfg.ChannelID,
		cfg.VoiceChannelID,
		cfg.PingRoleID,
		prayersJSON,
		offsetsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert config for guild %d: %w", cfg.GuildID, err)
	}

	return nil
}

// SubscribedGuildIDs returns every guild with a notification channel set,
// used at startup to know which guild loops to start
func (r *GuildConfigRepository) SubscribedGuildIDs(ctx context.Context) ([]int64, error) {
	query := `
		SELECT guild_id
		FROM guild_configs
		WHERE channel_id IS NOT NULL
		ORDER BY guild_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribed guilds: %w", err)
	}
	defer rows.Close()

	var guildIDs []int64
	for rows.Next() {
		var guildID int64
		if err := rows.Scan(&guildID); err != nil {
			return nil, fmt.Errorf("failed to scan guild id: %w", err)
		}
		guildIDs = append(guildIDs, guildID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribed guilds: %w", err)
	}

	return guildIDs, nil
}

// marshalConfigColumns encodes the JSONB columns shared by guild and user configs
func marshalConfigColumns(location *models.Location, prayers []models.Prayer, offsets map[models.Prayer]int) ([]byte, []byte, []byte, error) {
	var locationJSON []byte
	if location != nil {
		encoded, err := json.Marshal(location)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal location: %w", err)
		}
		locationJSON = encoded
	}

	if prayers == nil {
		prayers = []models.Prayer{}
	}
	prayersJSON, err := json.Marshal(prayers)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal enabled prayers: %w", err)
	}

	if offsets == nil {
		offsets = map[models.Prayer]int{}
	}
	offsetsJSON, err := json.Marshal(offsets)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal prayer offsets: %w", err)
	}

	return locationJSON, prayersJSON, offsetsJSON, nil
}

// unmarshalConfigColumns decodes the JSONB columns shared by guild and user configs
func unmarshalConfigColumns(locationJSON, prayersJSON, offsetsJSON []byte, location **models.Location, prayers *[]models.Prayer, offsets *map[models.Prayer]int) error {
	if len(locationJSON) > 0 {
		var decoded models.Location
		if err := json.Unmarshal(locationJSON, &decoded); err != nil {
			return fmt.Errorf("failed to unmarshal location: %w", err)
		}
		*location = &decoded
	}

	if len(prayersJSON) > 0 {
		if err := json.Unmarshal(prayersJSON, prayers); err != nil {
			return fmt.Errorf("failed to unmarshal enabled prayers: %w", err)
		}
	}

	if len(offsetsJSON) > 0 {
		if err := json.Unmarshal(offsetsJSON, offsets); err != nil {
			return fmt.Errorf("failed to unmarshal prayer offsets: %w", err)
		}
	}
	if *offsets == nil {
		*offsets = map[models.Prayer]int{}
	}

	return nil
}
