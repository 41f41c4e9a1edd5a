package timesource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"athanbot/models"

	log "github.com/sirupsen/logrus"
)

const cacheTTL = time.Hour

// inner is the fetch half of a time source, satisfied by Client.
type inner interface {
	Fetch(ctx context.Context, location *models.Location, date, timezone string, method models.CalculationMethod) (*models.PrayerTimes, error)
}

type cacheEntry struct {
	times     *models.PrayerTimes
	fetchedAt time.Time
}

// CachedSource wraps a time source with an in-memory cache keyed by location
// identity and date. Entries stay valid for one hour, so every guild polling
// the same city shares one upstream request per hour.
type CachedSource struct {
	source inner
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCachedSource(source inner) *CachedSource {
	return &CachedSource{
		source:  source,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) Fetch(ctx context.Context, location *models.Location, date, timezone string, method models.CalculationMethod) (*models.PrayerTimes, error) {
	key := fmt.Sprintf("%s_%s_%s", location.CacheKey(), date, method)

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()

	if ok && c.now().Sub(entry.fetchedAt) < cacheTTL {
		log.WithField("key", key).Debug("Using cached prayer times")
		return entry.times, nil
	}

	times, err := c.source.Fetch(ctx, location, date, timezone, method)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{times: times, fetchedAt: c.now()}
	c.mu.Unlock()

	return times, nil
}
