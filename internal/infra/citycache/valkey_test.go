package citycache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/astro-prediction/internal/domain/geo"
)

func TestValkeyStoreRoundTrip(t *testing.T) {
	mr, store := newValkeyStoreUnderTest(t, "")
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "berlin")
	require.NoError(t, err)
	require.False(t, ok)

	cities := []geo.CityCandidate{{Name: "Berlin", Latitude: 52.52, Longitude: 13.4, Timezone: 1, Country: "Deutschland"}}
	require.NoError(t, store.Set(ctx, "berlin", cities, time.Minute))
	require.True(t, mr.Exists("citysearch:q:berlin"))
	require.Equal(t, time.Minute, mr.TTL("citysearch:q:berlin"))

	got, ok, err := store.Get(ctx, "berlin")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, cities, got)

	mr.FastForward(2 * time.Minute)
	_, ok, err = store.Get(ctx, "berlin")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyStoreTTL(t *testing.T) {
	mr, store := newValkeyStoreUnderTest(t, "cities")
	ctx := context.Background()
	cities := []geo.CityCandidate{{Name: "Oslo"}}

	require.NoError(t, store.Set(ctx, "short", cities, 200*time.Millisecond))
	require.Equal(t, time.Second, mr.TTL("cities:q:short"))

	require.NoError(t, store.Set(ctx, "forever", cities, 0))
	require.True(t, mr.Exists("cities:q:forever"))
	require.Zero(t, mr.TTL("cities:q:forever"))
}

func TestValkeyStoreCorruptPayload(t *testing.T) {
	mr, store := newValkeyStoreUnderTest(t, "")
	require.NoError(t, mr.Set("citysearch:q:broken", "{not json"))

	_, ok, err := store.Get(context.Background(), "broken")
	require.Error(t, err)
	require.False(t, ok)
}

func TestValkeyStoreUnreachable(t *testing.T) {
	mr, store := newValkeyStoreUnderTest(t, "")
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, err := store.Get(ctx, "berlin")
	require.Error(t, err)
}

func newValkeyStoreUnderTest(t *testing.T, prefix string) (*miniredis.Miniredis, *ValkeyStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{mr.Addr()},
		DisableCache:      true,
		ForceSingleClient: true,
		ClientSetInfo:     valkey.DisableClientSetInfo,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return mr, NewValkeyStore(client, prefix)
}
