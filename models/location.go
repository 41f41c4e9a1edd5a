package models

import (
	"fmt"
	"strings"
)

// LocationType discriminates how a location is specified
type LocationType string

const (
	LocationTypeCity        LocationType = "city"
	LocationTypeCoordinates LocationType = "coordinates"
)

// Location is where prayer times are computed for. Exactly one representation
// is active, selected by Type.
type Location struct {
	Type           LocationType `json:"location_type"`
	City           string       `json:"city,omitempty"`
	Country        string       `json:"country,omitempty"`
	Latitude       float64      `json:"latitude,omitempty"`
	Longitude      float64      `json:"longitude,omitempty"`
	DaylightSaving bool         `json:"daylight_saving"`
}

// CityLocation builds a city based location
func CityLocation(city, country string, daylightSaving bool) *Location {
	return &Location{
		Type:           LocationTypeCity,
		City:           city,
		Country:        country,
		DaylightSaving: daylightSaving,
	}
}

// CacheKey returns the canonical identity string used to key the time source
// cache together with a date.
func (l *Location) CacheKey() string {
	if l == nil {
		return "none"
	}
	switch l.Type {
	case LocationTypeCoordinates:
		return fmt.Sprintf("%f_%f", l.Latitude, l.Longitude)
	default:
		return fmt.Sprintf("%s_%s", strings.ToLower(l.City), strings.ToLower(l.Country))
	}
}

// DisplayName returns a short human readable label
func (l *Location) DisplayName() string {
	if l == nil {
		return "Not set"
	}
	if l.Type == LocationTypeCoordinates {
		return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
	}
	if l.Country != "" {
		return fmt.Sprintf("%s, %s", l.City, l.Country)
	}
	return l.City
}
