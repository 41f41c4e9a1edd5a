package timesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"athanbot/models"

	log "github.com/sirupsen/logrus"
)

const requestTimeout = 10 * time.Second

// apiDay is one day's entry from the MuslimSalat items array. Times come back
// in 12-hour "5:58 am" form.
type apiDay struct {
	DateFor string `json:"date_for"`
	Fajr    string `json:"fajr"`
	Shurooq string `json:"shurooq"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

type apiResponse struct {
	StatusValid int      `json:"status_valid"`
	Items       []apiDay `json:"items"`
}

// Client fetches prayer times from the MuslimSalat.com API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Fetch retrieves prayer times for the given location and date. The date is
// YYYY-MM-DD in the caller's zone; the returned times carry that same zone.
// Any error means the whole day is unusable and the caller should retry later.
func (c *Client) Fetch(ctx context.Context, location *models.Location, date, timezone string, method models.CalculationMethod) (*models.PrayerTimes, error) {
	endpoint, err := c.buildURL(location, date, method)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.WithFields(log.Fields{
		"location": location.DisplayName(),
		"date":     date,
	}).Debug("Fetching prayer times")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prayer times: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prayer times API returned status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode prayer times response: %w", err)
	}
	if len(body.Items) == 0 {
		return nil, fmt.Errorf("prayer times response has no items")
	}

	return parseDay(body.Items[0], date, timezone)
}

// buildURL assembles the MuslimSalat path form
// /{city}/weekly/{DD-MM-YYYY}/{daylight}/{method}.json with the API key as a
// query parameter. The API only understands city slugs, so coordinate
// locations fall back to their stored city name.
func (c *Client) buildURL(location *models.Location, date string, method models.CalculationMethod) (string, error) {
	city := "doha"
	if location != nil && location.City != "" {
		city = strings.ReplaceAll(strings.ToLower(location.City), " ", "-")
	}
	if location != nil && location.Type == models.LocationTypeCoordinates {
		log.WithField("city", city).Warn("Coordinates not supported by API, using city slug")
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	apiDate := parsed.Format("02-01-2006")

	daylight := "false"
	if location != nil && location.DaylightSaving {
		daylight = "true"
	}

	if !method.Valid() {
		method = models.DefaultCalculationMethod
	}

	endpoint := fmt.Sprintf("%s/%s/weekly/%s/%s/%s.json", c.baseURL, city, apiDate, daylight, method)
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}
	return endpoint, nil
}

// parseDay converts one API day into PrayerTimes. A malformed required prayer
// rejects the whole day rather than notifying off a wrong time. Shurooq is
// informational only, so a missing or malformed value gets a placeholder.
func parseDay(day apiDay, date, timezone string) (*models.PrayerTimes, error) {
	times := &models.PrayerTimes{
		Date:     date,
		Timezone: timezone,
	}

	for _, field := range []struct {
		prayer models.Prayer
		raw    string
		dest   *string
	}{
		{models.PrayerFajr, day.Fajr, &times.Fajr},
		{models.PrayerDhuhr, day.Dhuhr, &times.Dhuhr},
		{models.PrayerAsr, day.Asr, &times.Asr},
		{models.PrayerMaghrib, day.Maghrib, &times.Maghrib},
		{models.PrayerIsha, day.Isha, &times.Isha},
	} {
		parsed, err := parse12Hour(field.raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s time %q: %w", field.prayer, field.raw, err)
		}
		*field.dest = parsed
	}

	sunrise, err := parse12Hour(day.Shurooq)
	if err != nil {
		log.WithField("shurooq", day.Shurooq).Warn("Failed to parse sunrise time")
		sunrise = "06:00"
	}
	times.Sunrise = sunrise

	return times, nil
}

// parse12Hour converts "5:58 am" / "12:44 PM" into 24-hour "HH:MM".
func parse12Hour(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	parsed, err := time.Parse("3:04 pm", normalized)
	if err != nil {
		return "", err
	}
	return parsed.Format("15:04"), nil
}
