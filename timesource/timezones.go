package timesource

import "strings"

// cityTimezones covers cities the API is commonly asked about. Anything not
// listed falls through to the country table and then to UTC.
var cityTimezones = map[string]string{
	"london":     "Europe/London",
	"manchester": "Europe/London",
	"birmingham": "Europe/London",
	"dublin":     "Europe/Dublin",

	"doha":  "Asia/Qatar",
	"qatar": "Asia/Qatar",

	"dubai":     "Asia/Dubai",
	"abu dhabi": "Asia/Dubai",

	"riyadh": "Asia/Riyadh",
	"jeddah": "Asia/Riyadh",
	"makkah": "Asia/Riyadh",
	"mecca":  "Asia/Riyadh",
	"medina": "Asia/Riyadh",

	"new york":    "America/New_York",
	"los angeles": "America/Los_Angeles",
	"chicago":     "America/Chicago",

	"toronto":   "America/Toronto",
	"vancouver": "America/Vancouver",

	"paris":  "Europe/Paris",
	"berlin": "Europe/Berlin",
	"rome":   "Europe/Rome",
	"madrid": "Europe/Madrid",
}

var countryTimezones = map[string]string{
	"uk":             "Europe/London",
	"united kingdom": "Europe/London",
	"england":        "Europe/London",
	"qatar":          "Asia/Qatar",
	"uae":            "Asia/Dubai",
	"saudi arabia":   "Asia/Riyadh",
	"usa":            "America/New_York",
	"canada":         "America/Toronto",
}

// GuessTimezone maps a city and optional country to an IANA zone name,
// returning UTC when neither is recognized.
func GuessTimezone(city, country string) string {
	if tz, ok := cityTimezones[strings.ToLower(strings.TrimSpace(city))]; ok {
		return tz
	}
	if tz, ok := countryTimezones[strings.ToLower(strings.TrimSpace(country))]; ok {
		return tz
	}
	return "UTC"
}
