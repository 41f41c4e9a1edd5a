package models

import (
	"time"
)

// UserConfig holds a user's personal prayer preferences. These only shift
// what the user sees in interactive commands, never scheduled notifications.
type UserConfig struct {
	UserID            int64             `db:"user_id"`
	Location          *Location         `db:"location"`
	CalculationMethod CalculationMethod `db:"calculation_method"`
	Timezone          string            `db:"timezone"`
	PrayerOffsets     map[Prayer]int    `db:"prayer_offsets"`
	UpdatedAt         time.Time         `db:"updated_at"`
}

// NewUserConfig returns a config with sensible defaults for a new user
func NewUserConfig(userID int64) *UserConfig {
	return &UserConfig{
		UserID:            userID,
		CalculationMethod: DefaultCalculationMethod,
		Timezone:          "UTC",
		PrayerOffsets:     make(map[Prayer]int),
	}
}

// OffsetFor returns the user's minute adjustment for a prayer, zero when unset
func (c *UserConfig) OffsetFor(p Prayer) int {
	if c.PrayerOffsets == nil {
		return 0
	}
	return c.PrayerOffsets[p]
}

// SetOffset stores the user's minute adjustment for a prayer
func (c *UserConfig) SetOffset(p Prayer, minutes int) {
	if c.PrayerOffsets == nil {
		c.PrayerOffsets = make(map[Prayer]int)
	}
	c.PrayerOffsets[p] = minutes
}
