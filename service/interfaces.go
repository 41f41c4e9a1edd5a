package service

import (
	"context"
	"time"

	"athanbot/models"
)

// GuildConfigRepository defines the interface for guild configuration access
type GuildConfigRepository interface {
	// Get retrieves a guild's configuration, nil when the guild never ran setup
	Get(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// Upsert saves a guild's configuration, replacing the whole row
	Upsert(ctx context.Context, cfg *models.GuildConfig) error

	// SubscribedGuildIDs returns every guild with a notification channel set
	SubscribedGuildIDs(ctx context.Context) ([]int64, error)
}

// SentNotificationRepository defines the interface for the durable dedup log
type SentNotificationRepository interface {
	// Record durably stores a sent fact; duplicate inserts are a no-op
	Record(ctx context.Context, record *models.SentNotification) error

	// WasSent reports whether the (guild, prayer, date) triple was notified
	WasSent(ctx context.Context, guildID int64, prayer models.Prayer, date string) (bool, error)
}

// UserConfigRepository defines the interface for per-user preference access
type UserConfigRepository interface {
	// Get retrieves a user's personal configuration, nil when absent
	Get(ctx context.Context, userID int64) (*models.UserConfig, error)

	// Upsert saves a user's personal configuration, replacing the whole row
	Upsert(ctx context.Context, cfg *models.UserConfig) error
}

// TimeSource produces a day's prayer times for a location. Implementations
// fail soft: a nil result with a nil or non-nil error means "no data today",
// and callers retry on their own cadence rather than escalating.
type TimeSource interface {
	Fetch(ctx context.Context, location *models.Location, date string, timezone string, method models.CalculationMethod) (*models.PrayerTimes, error)
}

// Notifier delivers prayer notifications to a guild. Both calls are fire and
// forget: the returned flag is logged by the scheduler but never blocks the
// durable sent record from being written.
type Notifier interface {
	// NotifyPrayer sends the text notification to the guild's channel
	NotifyPrayer(ctx context.Context, cfg *models.GuildConfig, prayer models.Prayer, at time.Time) bool

	// AnnounceVoice plays the adhan in the guild's voice channel
	AnnounceVoice(ctx context.Context, cfg *models.GuildConfig, prayer models.Prayer) bool
}

// PrayerQueryService answers interactive "what is next" style questions
type PrayerQueryService interface {
	// NextPrayer returns the next enabled prayer for the guild, today or
	// tomorrow. A nil result means the time source had no data.
	NextPrayer(ctx context.Context, cfg *models.GuildConfig) (*models.UpcomingPrayer, error)

	// Today returns today's times for the guild, nil when the source had no data
	Today(ctx context.Context, cfg *models.GuildConfig) (*models.PrayerTimes, error)
}
