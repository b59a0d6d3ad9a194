package geo

import (
	"context"
	"time"
)

// Request captures the search-city payload.
type Request struct {
	Query string `json:"query"`
}

// CityCandidate is one place offered to the user. Timezone is longitude/15
// rounded, an estimate rather than a tz database lookup.
type CityCandidate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  float64 `json:"timezone"`
	Country   string  `json:"country"`
}

// Place is a geocoder hit before shaping.
type Place struct {
	DisplayName string
	Name        string
	Latitude    float64
	Longitude   float64
	Country     string
}

// Geocoder resolves free text into places.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Cache stores shaped search results by normalized query.
type Cache interface {
	Get(ctx context.Context, key string) ([]CityCandidate, bool, error)
	Set(ctx context.Context, key string, cities []CityCandidate, ttl time.Duration) error
}

// Config wires runtime dependencies for city search.
type Config struct {
	MinQueryLength int
	CacheTTL       time.Duration
}
