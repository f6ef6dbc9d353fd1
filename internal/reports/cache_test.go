package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestCacheVersionInitialises(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	ver, err := cache.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), ver)

	again, err := cache.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, ver, again)
}

func TestCacheBuildKeyIncludesVersion(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "reports", "full", "tenant-1")
	require.NoError(t, err)
	require.Equal(t, "reports:full:tenant-1:1", key)

	require.NoError(t, cache.Bump(ctx))

	bumped, err := cache.BuildKey(ctx, "reports", "full", "tenant-1")
	require.NoError(t, err)
	require.Equal(t, "reports:full:tenant-1:2", bumped)
}

func TestCacheFetchJSON(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return map[string]int{"value": 42}, nil
	}

	var first map[string]int
	require.NoError(t, cache.FetchJSON(ctx, "k", &first, loader))
	require.Equal(t, 42, first["value"])
	require.Equal(t, 1, calls)

	var second map[string]int
	require.NoError(t, cache.FetchJSON(ctx, "k", &second, loader))
	require.Equal(t, 42, second["value"])
	require.Equal(t, 1, calls, "second fetch must hit the cache")
}

func TestCacheFetchJSONLoaderError(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := cache.FetchJSON(ctx, "k", &struct{}{}, func(context.Context) (interface{}, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.False(t, mr.Exists("k"), "failed loads must not be cached")
}

func TestCacheNilDegradesToLoader(t *testing.T) {
	var cache *Cache
	var out map[string]int
	err := cache.FetchJSON(context.Background(), "k", &out, func(context.Context) (interface{}, error) {
		return map[string]int{"value": 7}, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, out["value"])

	require.NoError(t, cache.Bump(context.Background()))
}

func TestKeyReportPlaceholders(t *testing.T) {
	require.Equal(t, "reports:full:t1:-:-", keyReport("t1", "", ""))
	require.Equal(t, "reports:full:t1:30days:2024-02", keyReport("t1", "30days", "2024-02"))
}
