package service

import (
	"context"
	"fmt"
	"time"

	"athanbot/models"
)

// prayerQueryService implements the PrayerQueryService interface
type prayerQueryService struct {
	timeSource TimeSource
	now        func() time.Time
}

// NewPrayerQueryService creates a new prayer query service
func NewPrayerQueryService(timeSource TimeSource) PrayerQueryService {
	return &prayerQueryService{
		timeSource: timeSource,
		now:        time.Now,
	}
}

// NextPrayer returns the next enabled prayer for the guild. Today's times are
// tried first, then tomorrow's when everything today has already passed.
func (s *prayerQueryService) NextPrayer(ctx context.Context, cfg *models.GuildConfig) (*models.UpcomingPrayer, error) {
	if cfg.Location == nil {
		return nil, fmt.Errorf("guild %d has no location configured", cfg.GuildID)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid guild timezone %q: %w", cfg.Timezone, err)
	}
	now := s.now().In(loc)

	for _, date := range []string{
		now.Format("2006-01-02"),
		now.AddDate(0, 0, 1).Format("2006-01-02"),
	} {
		times, err := s.timeSource.Fetch(ctx, cfg.Location, date, cfg.Timezone, cfg.CalculationMethod)
		if err != nil || times == nil {
			continue
		}
		if next := findNext(now, times, cfg); next != nil {
			return next, nil
		}
	}

	// No data from the source for either day, the caller surfaces "try again"
	return nil, nil
}

// Today returns today's times for the guild, nil when the source had no data
func (s *prayerQueryService) Today(ctx context.Context, cfg *models.GuildConfig) (*models.PrayerTimes, error) {
	if cfg.Location == nil {
		return nil, fmt.Errorf("guild %d has no location configured", cfg.GuildID)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid guild timezone %q: %w", cfg.Timezone, err)
	}
	today := s.now().In(loc).Format("2006-01-02")

	times, err := s.timeSource.Fetch(ctx, cfg.Location, today, cfg.Timezone, cfg.CalculationMethod)
	if err != nil || times == nil {
		return nil, nil
	}
	return times, nil
}

// findNext walks the enabled prayers in day order and returns the first whose
// effective instant is still ahead of now
func findNext(now time.Time, times *models.PrayerTimes, cfg *models.GuildConfig) *models.UpcomingPrayer {
	for _, prayer := range cfg.EnabledPrayers {
		if !prayer.Notifiable() {
			continue
		}

		instant, err := times.InstantFor(prayer, cfg.OffsetFor(prayer))
		if err != nil {
			continue
		}
		if instant.After(now) {
			return &models.UpcomingPrayer{Prayer: prayer, At: instant}
		}
	}
	return nil
}
