package citycache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/astro-prediction/internal/domain/geo"
)

type entry struct {
	cities    []geo.CityCandidate
	expiresAt time.Time
}

// MemoryStore keeps search results in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs an empty in-process cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements geo.Cache. Expired entries are evicted on read.
func (s *MemoryStore) Get(_ context.Context, key string) ([]geo.CityCandidate, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && e.expiresAt.Before(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	out := make([]geo.CityCandidate, len(e.cities))
	copy(out, e.cities)
	return out, true, nil
}

// Set implements geo.Cache. A non-positive ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, cities []geo.CityCandidate, ttl time.Duration) error {
	stored := make([]geo.CityCandidate, len(cities))
	copy(stored, cities)
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{cities: stored, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

var _ geo.Cache = (*MemoryStore)(nil)
