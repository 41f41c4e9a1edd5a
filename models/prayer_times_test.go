package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimes() *PrayerTimes {
	return &PrayerTimes{
		Date:     "2025-06-01",
		Fajr:     "05:58",
		Sunrise:  "06:25",
		Dhuhr:    "12:44",
		Asr:      "16:10",
		Maghrib:  "18:30",
		Isha:     "20:00",
		Timezone: "Asia/Qatar",
	}
}

func TestInstantFor_ResolvesInGuildZone(t *testing.T) {
	times := sampleTimes()

	instant, err := times.InstantFor(PrayerFajr, 0)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 5, 58, 0, 0, loc), instant)
}

func TestInstantFor_OffsetShiftsByWholeMinutes(t *testing.T) {
	times := sampleTimes()

	base, err := times.InstantFor(PrayerIsha, 0)
	require.NoError(t, err)

	for _, offset := range []int{-30, -1, 0, 1, 5, 60} {
		shifted, err := times.InstantFor(PrayerIsha, offset)
		require.NoError(t, err)
		assert.Equal(t, base.Add(time.Duration(offset)*time.Minute), shifted, "offset %d", offset)
	}
}

func TestInstantFor_InvalidInputs(t *testing.T) {
	times := sampleTimes()
	times.Asr = "25:99"
	_, err := times.InstantFor(PrayerAsr, 0)
	assert.Error(t, err)

	times = sampleTimes()
	times.Timezone = "Mars/Olympus"
	_, err = times.InstantFor(PrayerFajr, 0)
	assert.Error(t, err)
}

func TestParsePrayer(t *testing.T) {
	p, ok := ParsePrayer("fajr")
	assert.True(t, ok)
	assert.Equal(t, PrayerFajr, p)

	p, ok = ParsePrayer("Maghrib")
	assert.True(t, ok)
	assert.Equal(t, PrayerMaghrib, p)

	// Canonical casing comes back regardless of what the user typed
	p, ok = ParsePrayer("ISHA")
	assert.True(t, ok)
	assert.Equal(t, PrayerIsha, p)

	_, ok = ParsePrayer("tahajjud")
	assert.False(t, ok)
}

func TestSunriseIsNotNotifiable(t *testing.T) {
	assert.False(t, PrayerSunrise.Notifiable())
	assert.NotContains(t, NotifiablePrayers, PrayerSunrise)
	for _, p := range NotifiablePrayers {
		assert.True(t, p.Notifiable())
	}
}

func TestGuildConfig_EnableKeepsCanonicalOrder(t *testing.T) {
	cfg := NewGuildConfig(1)
	cfg.DisablePrayer(PrayerFajr)
	cfg.DisablePrayer(PrayerAsr)
	assert.Equal(t, []Prayer{PrayerDhuhr, PrayerMaghrib, PrayerIsha}, cfg.EnabledPrayers)

	cfg.EnablePrayer(PrayerFajr)
	assert.Equal(t, []Prayer{PrayerFajr, PrayerDhuhr, PrayerMaghrib, PrayerIsha}, cfg.EnabledPrayers)

	// Enabling twice does not duplicate
	cfg.EnablePrayer(PrayerFajr)
	assert.Equal(t, []Prayer{PrayerFajr, PrayerDhuhr, PrayerMaghrib, PrayerIsha}, cfg.EnabledPrayers)
}
