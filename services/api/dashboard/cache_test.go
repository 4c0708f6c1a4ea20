package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/analytics"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

func TestLRUCacheServesRepeatedSelections(t *testing.T) {
	cache, err := NewLRUCache(2)
	require.NoError(t, err)
	d := New(fixtureTables(), WithCache(cache))
	ctx := context.Background()

	spring := sel([]dataset.Year{dataset.Year2011}, []dataset.Season{dataset.Spring})
	first, err := d.Render(ctx, spring)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := d.Render(ctx, sel([]dataset.Year{dataset.Year2011, dataset.Year2011}, []dataset.Season{dataset.Spring}))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestLRUCacheEvicts(t *testing.T) {
	cache, err := NewLRUCache(1)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", &ViewModel{DailyRows: 1}))
	require.NoError(t, cache.Set(ctx, "b", &ViewModel{DailyRows: 2}))

	_, ok, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	vm, ok, err := cache.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, vm.DailyRows)
}

func TestNewLRUCacheRejectsZeroSize(t *testing.T) {
	_, err := NewLRUCache(0)
	assert.Error(t, err)
}

func TestCachedWarningsAreNotShared(t *testing.T) {
	cache, err := NewLRUCache(4)
	require.NoError(t, err)
	d := New(fixtureTables(), WithCache(cache))
	ctx := context.Background()

	withUnknown := sel([]dataset.Year{dataset.Year2011, dataset.YearFromCalendar(1999)}, []dataset.Season{dataset.Spring})
	vm, err := d.Render(ctx, withUnknown)
	require.NoError(t, err)
	assert.Len(t, vm.Warnings, 1)

	clean, err := d.Render(ctx, sel([]dataset.Year{dataset.Year2011}, []dataset.Season{dataset.Spring}))
	require.NoError(t, err)
	assert.Empty(t, clean.Warnings)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	cache, err := NewRedisCache(ctx, "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	d := New(fixtureTables(), WithCache(cache))
	all := analytics.SelectAll(d.Tables().Domain())

	vm, err := d.Render(ctx, all)
	require.NoError(t, err)

	key := redisKeyPrefix + all.Key()
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	cached, ok, err := cache.Get(ctx, all.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, vm, cached)

	again, err := d.Render(ctx, all)
	require.NoError(t, err)
	assert.Equal(t, vm, again)
}

func TestRedisCacheMissAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCacheWithClient(client, time.Second)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", &ViewModel{DailyRows: 3}))
	mr.FastForward(2 * time.Second)

	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	require.NoError(t, mr.Set(redisKeyPrefix+"bad", "{not json"))

	_, _, err := cache.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), "redis://"+addr, time.Minute)
	assert.Error(t, err)

	_, err = NewRedisCache(context.Background(), "://bad", time.Minute)
	assert.Error(t, err)
}
