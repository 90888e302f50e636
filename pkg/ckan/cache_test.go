package ckan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-io/ckan-client/pkg/ckan"
)

func entryAt(data string, at time.Time) *ckan.CacheEntry {
	return &ckan.CacheEntry{Data: []byte(data), StoredAt: at}
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := ckan.NewMemoryCache(0)

		err := cache.Set(ctx, "packages", entryAt(`{"rows": []}`, time.Now()))
		require.NoError(t, err)

		entry, err := cache.Get(ctx, "packages")
		require.NoError(t, err)
		assert.Equal(t, `{"rows": []}`, string(entry.Data))
		assert.True(t, cache.Has(ctx, "packages"))
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		cache := ckan.NewMemoryCache(0)

		_, err := cache.Get(ctx, "absent")
		require.ErrorIs(t, err, ckan.ErrCacheKeyNotFound)
		assert.False(t, cache.Has(ctx, "absent"))
	})

	t.Run("overwrite replaces the entry", func(t *testing.T) {
		t.Parallel()

		cache := ckan.NewMemoryCache(0)

		require.NoError(t, cache.Set(ctx, "k", entryAt("old", time.Now())))
		require.NoError(t, cache.Set(ctx, "k", entryAt("new", time.Now())))

		entry, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "new", string(entry.Data))
	})

	t.Run("delete and clear", func(t *testing.T) {
		t.Parallel()

		cache := ckan.NewMemoryCache(0)
		require.NoError(t, cache.Set(ctx, "a", entryAt("1", time.Now())))
		require.NoError(t, cache.Set(ctx, "b", entryAt("2", time.Now())))

		require.NoError(t, cache.Delete(ctx, "a"))
		assert.False(t, cache.Has(ctx, "a"))
		assert.True(t, cache.Has(ctx, "b"))

		require.NoError(t, cache.Clear(ctx))
		assert.False(t, cache.Has(ctx, "b"))
	})

	t.Run("bounded cache evicts the oldest entry", func(t *testing.T) {
		t.Parallel()

		cache := ckan.NewMemoryCache(2)
		base := time.Now()

		require.NoError(t, cache.Set(ctx, "oldest", entryAt("1", base.Add(-2*time.Hour))))
		require.NoError(t, cache.Set(ctx, "middle", entryAt("2", base.Add(-time.Hour))))
		require.NoError(t, cache.Set(ctx, "newest", entryAt("3", base)))

		assert.False(t, cache.Has(ctx, "oldest"))
		assert.True(t, cache.Has(ctx, "middle"))
		assert.True(t, cache.Has(ctx, "newest"))
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := ckan.NewNoOpCache()

	require.NoError(t, cache.Set(ctx, "k", entryAt("v", time.Now())))

	_, err := cache.Get(ctx, "k")
	require.ErrorIs(t, err, ckan.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Clear(ctx))
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := ckan.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &ckan.MemoryCache{}, cache)
	})

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		cache, err := ckan.NewCacheFromConfig(&ckan.CacheConfig{
			Type:   ckan.CacheTypeMemory,
			Memory: &ckan.MemoryCacheConfig{MaxSize: 10},
		})
		require.NoError(t, err)
		assert.IsType(t, &ckan.MemoryCache{}, cache)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		cache, err := ckan.NewCacheFromConfig(&ckan.CacheConfig{Type: ckan.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &ckan.NoOpCache{}, cache)
	})

	t.Run("nats without config fails", func(t *testing.T) {
		t.Parallel()

		_, err := ckan.NewCacheFromConfig(&ckan.CacheConfig{Type: ckan.CacheTypeNATS})
		require.ErrorIs(t, err, ckan.ErrNATSConfigRequired)
	})

	t.Run("unsupported type fails", func(t *testing.T) {
		t.Parallel()

		_, err := ckan.NewCacheFromConfig(&ckan.CacheConfig{Type: ckan.CacheType("redis")})
		require.ErrorIs(t, err, ckan.ErrUnsupportedCacheType)
	})
}
