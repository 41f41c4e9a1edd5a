package repository

import (
	"context"
	"fmt"

	"athanbot/database"
	"athanbot/models"
)

// SentNotificationRepository implements the SentNotificationRepository interface
type SentNotificationRepository struct {
	q queryable
}

// NewSentNotificationRepository creates a new sent notification repository
func NewSentNotificationRepository(db *database.DB) *SentNotificationRepository {
	return &SentNotificationRepository{q: db.Pool}
}

// Record durably stores the fact that a guild was notified for a prayer on a
// date. Inserting the same triple twice is a no-op, never an error.
func (r *SentNotificationRepository) Record(ctx context.Context, record *models.SentNotification) error {
	query := `
		INSERT INTO sent_notifications (guild_id, prayer, date, scheduled_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, prayer, date) DO NOTHING
	`

	_, err := r.q.Exec(ctx, query, record.GuildID, record.Prayer, record.Date, record.ScheduledTime)
	if err != nil {
		return fmt.Errorf("failed to record sent notification for guild %d %s %s: %w",
			record.GuildID, record.Prayer, record.Date, err)
	}

	return nil
}

// WasSent reports whether the guild was already notified for this prayer and date
func (r *SentNotificationRepository) WasSent(ctx context.Context, guildID int64, prayer models.Prayer, date string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sent_notifications
			WHERE guild_id = $1 AND prayer = $2 AND date = $3
		)
	`

	var sent bool
	err := r.q.QueryRow(ctx, query, guildID, prayer, date).Scan(&sent)
	if err != nil {
		return false, fmt.Errorf("failed to check sent notification for guild %d %s %s: %w",
			guildID, prayer, date, err)
	}

	return sent, nil
}
