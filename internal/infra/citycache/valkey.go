package citycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/astro-prediction/internal/domain/geo"
)

// ValkeyStore caches search results in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a cache backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "citysearch"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) ([]geo.CityCandidate, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.entryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var cities []geo.CityCandidate
	if err := json.Unmarshal([]byte(payload), &cities); err != nil {
		return nil, false, err
	}
	return cities, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, cities []geo.CityCandidate, ttl time.Duration) error {
	payload, err := json.Marshal(cities)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:q:%s", s.prefix, key)
}

var _ geo.Cache = (*ValkeyStore)(nil)
