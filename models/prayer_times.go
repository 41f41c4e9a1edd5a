package models

import (
	"fmt"
	"time"
)

// PrayerTimes holds one day's six computed instants for a location, as
// wall clock "HH:MM" strings in the authoritative timezone. Immutable once
// produced by the time source.
type PrayerTimes struct {
	Date     string // YYYY-MM-DD
	Fajr     string // HH:MM, 24 hour
	Sunrise  string
	Dhuhr    string
	Asr      string
	Maghrib  string
	Isha     string
	Timezone string // IANA zone the times are expressed in
}

// TimeFor returns the wall clock string for a prayer
func (t *PrayerTimes) TimeFor(p Prayer) string {
	switch p {
	case PrayerFajr:
		return t.Fajr
	case PrayerSunrise:
		return t.Sunrise
	case PrayerDhuhr:
		return t.Dhuhr
	case PrayerAsr:
		return t.Asr
	case PrayerMaghrib:
		return t.Maghrib
	case PrayerIsha:
		return t.Isha
	}
	return ""
}

// InstantFor combines a prayer's wall clock string with the day's date and
// timezone and applies a signed minute offset. The offset is unbounded, a
// large value simply lands on another wall clock day.
func (t *PrayerTimes) InstantFor(p Prayer, offsetMinutes int) (time.Time, error) {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", t.Timezone, err)
	}

	instant, err := time.ParseInLocation("2006-01-02 15:04", t.Date+" "+t.TimeFor(p), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s time %q: %w", p, t.TimeFor(p), err)
	}

	return instant.Add(time.Duration(offsetMinutes) * time.Minute), nil
}

// UpcomingPrayer is a prayer together with its effective instant
type UpcomingPrayer struct {
	Prayer Prayer
	At     time.Time
}
