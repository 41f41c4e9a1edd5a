package timesource

import (
	"context"
	"errors"
	"testing"
	"time"

	"athanbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	times *models.PrayerTimes
	err   error
}

func (s *countingSource) Fetch(ctx context.Context, location *models.Location, date, timezone string, method models.CalculationMethod) (*models.PrayerTimes, error) {
	s.calls++
	return s.times, s.err
}

func TestCachedSource_ServesFreshEntries(t *testing.T) {
	source := &countingSource{times: &models.PrayerTimes{Date: "2025-06-01", Fajr: "03:13"}}
	cached := NewCachedSource(source)

	clock := time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return clock }

	location := models.CityLocation("Doha", "Qatar", false)
	ctx := context.Background()

	first, err := cached.Fetch(ctx, location, "2025-06-01", "Asia/Qatar", models.MethodMWL)
	require.NoError(t, err)

	// 59 minutes later the entry is still fresh
	clock = clock.Add(59 * time.Minute)
	second, err := cached.Fetch(ctx, location, "2025-06-01", "Asia/Qatar", models.MethodMWL)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.calls)
}

func TestCachedSource_RefetchesStaleEntries(t *testing.T) {
	source := &countingSource{times: &models.PrayerTimes{Date: "2025-06-01"}}
	cached := NewCachedSource(source)

	clock := time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return clock }

	location := models.CityLocation("Doha", "Qatar", false)
	ctx := context.Background()

	_, err := cached.Fetch(ctx, location, "2025-06-01", "Asia/Qatar", models.MethodMWL)
	require.NoError(t, err)

	clock = clock.Add(61 * time.Minute)
	_, err = cached.Fetch(ctx, location, "2025-06-01", "Asia/Qatar", models.MethodMWL)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
}

func TestCachedSource_KeysByLocationDateAndMethod(t *testing.T) {
	source := &countingSource{times: &models.PrayerTimes{}}
	cached := NewCachedSource(source)

	doha := models.CityLocation("Doha", "Qatar", false)
	london := models.CityLocation("London", "UK", true)
	ctx := context.Background()

	_, _ = cached.Fetch(ctx, doha, "2025-06-01", "Asia/Qatar", models.MethodMWL)
	_, _ = cached.Fetch(ctx, london, "2025-06-01", "Europe/London", models.MethodMWL)
	_, _ = cached.Fetch(ctx, doha, "2025-06-02", "Asia/Qatar", models.MethodMWL)
	_, _ = cached.Fetch(ctx, doha, "2025-06-01", "Asia/Qatar", models.MethodUmmAlQura)
	// Repeat of the first call, served from cache
	_, _ = cached.Fetch(ctx, doha, "2025-06-01", "Asia/Qatar", models.MethodMWL)

	assert.Equal(t, 4, source.calls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	source := &countingSource{err: errors.New("upstream down")}
	cached := NewCachedSource(source)

	location := models.CityLocation("Doha", "Qatar", false)
	ctx := context.Background()

	_, err := cached.Fetch(ctx, location, "2025-06-01", "Asia/Qatar", models.MethodMWL)
	assert.Error(t, err)

	source.err = nil
	source.times = &models.PrayerTimes{Date: "2025-06-01"}
	times, err := cached.Fetch(ctx, location, "2025-06-01", "Asia/Qatar", models.MethodMWL)
	require.NoError(t, err)
	assert.NotNil(t, times)
	assert.Equal(t, 2, source.calls)
}
