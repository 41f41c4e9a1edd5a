package models

import "strings"

// Prayer identifies one of the six daily computed instants
type Prayer string

const (
	PrayerFajr    Prayer = "Fajr"
	PrayerSunrise Prayer = "Sunrise"
	PrayerDhuhr   Prayer = "Dhuhr"
	PrayerAsr     Prayer = "Asr"
	PrayerMaghrib Prayer = "Maghrib"
	PrayerIsha    Prayer = "Isha"
)

// AllPrayers lists every instant in canonical day order. This ordering is the
// one the scheduler evaluates prayers in.
var AllPrayers = []Prayer{
	PrayerFajr,
	PrayerSunrise,
	PrayerDhuhr,
	PrayerAsr,
	PrayerMaghrib,
	PrayerIsha,
}

// NotifiablePrayers lists the five prayers that can carry notifications.
// Sunrise is informational only and is never notified.
var NotifiablePrayers = []Prayer{
	PrayerFajr,
	PrayerDhuhr,
	PrayerAsr,
	PrayerMaghrib,
	PrayerIsha,
}

// Notifiable reports whether notifications may be sent for this prayer
func (p Prayer) Notifiable() bool {
	return p != PrayerSunrise && p.Valid()
}

// Valid reports whether p is one of the six known instants
func (p Prayer) Valid() bool {
	switch p {
	case PrayerFajr, PrayerSunrise, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha:
		return true
	}
	return false
}

// ParsePrayer resolves a user supplied name to a Prayer
func ParsePrayer(name string) (Prayer, bool) {
	for _, p := range AllPrayers {
		if strings.EqualFold(string(p), name) {
			return p, true
		}
	}
	return "", false
}

// CalculationMethod selects the astronomical convention the time source uses
type CalculationMethod string

const (
	MethodEgypt         CalculationMethod = "1" // Egyptian General Authority of Survey
	MethodKarachiShafi  CalculationMethod = "2" // University Of Islamic Sciences, Karachi (Shafi)
	MethodKarachiHanafi CalculationMethod = "3" // University Of Islamic Sciences, Karachi (Hanafi)
	MethodISNA          CalculationMethod = "4" // Islamic Circle of North America
	MethodMWL           CalculationMethod = "5" // Muslim World League
	MethodUmmAlQura     CalculationMethod = "6" // Umm Al-Qura
	MethodFixedIsha     CalculationMethod = "7" // Fixed Isha
)

// DefaultCalculationMethod is used when a guild never picked one
const DefaultCalculationMethod = MethodMWL

// AllCalculationMethods lists the supported methods in API order
var AllCalculationMethods = []CalculationMethod{
	MethodEgypt,
	MethodKarachiShafi,
	MethodKarachiHanafi,
	MethodISNA,
	MethodMWL,
	MethodUmmAlQura,
	MethodFixedIsha,
}

// Valid reports whether m is one of the seven supported methods
func (m CalculationMethod) Valid() bool {
	switch m {
	case MethodEgypt, MethodKarachiShafi, MethodKarachiHanafi, MethodISNA,
		MethodMWL, MethodUmmAlQura, MethodFixedIsha:
		return true
	}
	return false
}

// Name returns the human readable convention name
func (m CalculationMethod) Name() string {
	switch m {
	case MethodEgypt:
		return "Egyptian General Authority of Survey"
	case MethodKarachiShafi:
		return "University Of Islamic Sciences, Karachi (Shafi)"
	case MethodKarachiHanafi:
		return "University Of Islamic Sciences, Karachi (Hanafi)"
	case MethodISNA:
		return "Islamic Circle of North America"
	case MethodMWL:
		return "Muslim World League"
	case MethodUmmAlQura:
		return "Umm Al-Qura"
	case MethodFixedIsha:
		return "Fixed Isha"
	}
	return "Unknown"
}
