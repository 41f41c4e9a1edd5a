package models

import (
	"time"
)

// GuildConfig holds one guild's prayer notification configuration
type GuildConfig struct {
	GuildID           int64             `db:"guild_id"`
	Location          *Location         `db:"location"`
	CalculationMethod CalculationMethod `db:"calculation_method"`
	Timezone          string            `db:"timezone"`
	ChannelID         *int64            `db:"channel_id"`
	VoiceChannelID    *int64            `db:"voice_channel_id"`
	PingRoleID        *int64            `db:"ping_role_id"`
	EnabledPrayers    []Prayer          `db:"enabled_prayers"`
	PrayerOffsets     map[Prayer]int    `db:"prayer_offsets"`
	UpdatedAt         time.Time         `db:"updated_at"`
}

// NewGuildConfig returns the default configuration for a guild that just ran
// setup: all five prayers enabled, MWL method, UTC until a timezone is resolved.
func NewGuildConfig(guildID int64) *GuildConfig {
	return &GuildConfig{
		GuildID:           guildID,
		CalculationMethod: DefaultCalculationMethod,
		Timezone:          "UTC",
		EnabledPrayers:    append([]Prayer(nil), NotifiablePrayers...),
		PrayerOffsets:     make(map[Prayer]int),
	}
}

// IsSubscribed reports whether the guild has a notification channel set.
// A guild without one is dormant: the scheduler runs no side effects for it.
func (c *GuildConfig) IsSubscribed() bool {
	return c.ChannelID != nil
}

// OffsetFor returns the configured minute adjustment for a prayer, zero when unset
func (c *GuildConfig) OffsetFor(p Prayer) int {
	if c.PrayerOffsets == nil {
		return 0
	}
	return c.PrayerOffsets[p]
}

// SetOffset records a minute adjustment for a prayer
func (c *GuildConfig) SetOffset(p Prayer, minutes int) {
	if c.PrayerOffsets == nil {
		c.PrayerOffsets = make(map[Prayer]int)
	}
	c.PrayerOffsets[p] = minutes
}

// PrayerEnabled reports whether notifications are on for this prayer
func (c *GuildConfig) PrayerEnabled(p Prayer) bool {
	for _, enabled := range c.EnabledPrayers {
		if enabled == p {
			return true
		}
	}
	return false
}

// EnablePrayer adds a prayer to the enabled set, keeping canonical day order
func (c *GuildConfig) EnablePrayer(p Prayer) {
	if c.PrayerEnabled(p) {
		return
	}
	var ordered []Prayer
	for _, candidate := range AllPrayers {
		if candidate == p || c.PrayerEnabled(candidate) {
			ordered = append(ordered, candidate)
		}
	}
	c.EnabledPrayers = ordered
}

// DisablePrayer removes a prayer from the enabled set
func (c *GuildConfig) DisablePrayer(p Prayer) {
	var kept []Prayer
	for _, enabled := range c.EnabledPrayers {
		if enabled != p {
			kept = append(kept, enabled)
		}
	}
	c.EnabledPrayers = kept
}
