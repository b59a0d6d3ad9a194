package geo

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yanqian/astro-prediction/pkg/errors"
)

// Service exposes city lookup.
type Service interface {
	SearchCity(ctx context.Context, req Request) ([]CityCandidate, error)
}

type service struct {
	cfg      Config
	geocoder Geocoder
	cache    Cache
	logger   *slog.Logger
}

// NewService wires up city search. A nil cache disables caching.
func NewService(cfg Config, geocoder Geocoder, cache Cache, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		cache:    cache,
		logger:   logger.With("component", "geo.service"),
	}
}

// SearchCity returns an empty list without a network call for queries
// shorter than the configured minimum.
func (s *service) SearchCity(ctx context.Context, req Request) ([]CityCandidate, error) {
	query := req.Query
	if utf8.RuneCountInString(query) < s.cfg.MinQueryLength {
		return []CityCandidate{}, nil
	}

	key := cacheKey(query)
	if cached, ok := s.lookupCache(ctx, key); ok {
		return cached, nil
	}

	places, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUpstream, "City search error", err)
	}

	cities := make([]CityCandidate, 0, len(places))
	for _, p := range places {
		cities = append(cities, toCandidate(p))
	}
	s.logger.Info("city search completed", "query", query, "results", len(cities))
	s.storeCache(ctx, key, cities)
	return cities, nil
}

func (s *service) lookupCache(ctx context.Context, key string) ([]CityCandidate, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return nil, false
	}
	cities, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("city cache read failed", "error", err)
		return nil, false
	}
	return cities, ok
}

func (s *service) storeCache(ctx context.Context, key string, cities []CityCandidate) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, cities, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("city cache write failed", "error", err)
	}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func toCandidate(p Place) CityCandidate {
	return CityCandidate{
		Name:      firstNonEmpty(p.DisplayName, p.Name, "Unknown"),
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Timezone:  EstimateUTCOffset(p.Longitude),
		Country:   p.Country,
	}
}

// EstimateUTCOffset approximates the UTC offset from longitude, one hour per
// 15 degrees, halves rounded to even.
func EstimateUTCOffset(longitude float64) float64 {
	offset := math.RoundToEven(longitude / 15)
	if offset == 0 {
		return 0 // drop the sign of -0
	}
	return offset
}

// firstNonEmpty skips blank values as well as empty ones, so a display_name
// of only whitespace falls back to name.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
