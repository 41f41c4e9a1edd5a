package models

import (
	"time"
)

// SentNotification is the durable fact that a guild was notified for a prayer
// on a calendar date. Its existence is the sole source of deduplication truth:
// at most one row exists per (guild, prayer, date).
type SentNotification struct {
	ID            int64     `db:"id"`
	GuildID       int64     `db:"guild_id"`
	Prayer        Prayer    `db:"prayer"`
	Date          string    `db:"date"`           // YYYY-MM-DD in the guild's timezone
	ScheduledTime string    `db:"scheduled_time"` // HH:MM effective instant, for display
	CreatedAt     time.Time `db:"created_at"`
}
