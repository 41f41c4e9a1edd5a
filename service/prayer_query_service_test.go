package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"athanbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPrayerQueryService_NextPrayerToday(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)

	timeSource := new(MockTimeSource)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)

	svc := NewPrayerQueryService(timeSource).(*prayerQueryService)
	// Mid-morning, Dhuhr at 12:44 is next
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, loc) }

	next, err := svc.NextPrayer(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, models.PrayerDhuhr, next.Prayer)
	assert.Equal(t, "12:44", next.At.Format("15:04"))
}

func TestPrayerQueryService_NextPrayerRollsToTomorrow(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)

	tomorrow := qatarTimes()
	tomorrow.Date = "2025-06-02"

	timeSource := new(MockTimeSource)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-02", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(tomorrow, nil)

	svc := NewPrayerQueryService(timeSource).(*prayerQueryService)
	// Past Isha, tomorrow's Fajr is next
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 23, 0, 0, 0, loc) }

	next, err := svc.NextPrayer(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, models.PrayerFajr, next.Prayer)
	assert.Equal(t, "2025-06-02", next.At.Format("2006-01-02"))
}

func TestPrayerQueryService_NextPrayerSkipsDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.DisablePrayer(models.PrayerDhuhr)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)

	timeSource := new(MockTimeSource)
	timeSource.On("Fetch", ctx, cfg.Location, "2025-06-01", "Asia/Qatar", models.DefaultCalculationMethod).
		Return(qatarTimes(), nil)

	svc := NewPrayerQueryService(timeSource).(*prayerQueryService)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, loc) }

	next, err := svc.NextPrayer(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, models.PrayerAsr, next.Prayer)
}

func TestPrayerQueryService_NoDataReturnsNil(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)

	timeSource := new(MockTimeSource)
	timeSource.On("Fetch", ctx, cfg.Location, mock.AnythingOfType("string"), "Asia/Qatar", models.DefaultCalculationMethod).
		Return(nil, errors.New("upstream down"))

	svc := NewPrayerQueryService(timeSource).(*prayerQueryService)
	svc.now = time.Now

	next, err := svc.NextPrayer(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, next)

	today, err := svc.Today(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, today)
}

func TestPrayerQueryService_MissingLocationErrors(t *testing.T) {
	ctx := context.Background()
	cfg := qatarConfig(t)
	cfg.Location = nil

	svc := NewPrayerQueryService(new(MockTimeSource))

	_, err := svc.NextPrayer(ctx, cfg)
	assert.Error(t, err)

	_, err = svc.Today(ctx, cfg)
	assert.Error(t, err)
}
