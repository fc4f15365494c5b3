package persistence

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/notion-blog/internal/domain/search"
)

func TestSearchCacheKey(t *testing.T) {
	base := search.SearchParams{Query: "go", AncestorID: "root"}

	k1, err := searchCacheKey("legacy", base)
	require.NoError(t, err)
	k2, err := searchCacheKey("legacy", base)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.True(t, strings.HasPrefix(k1, searchCachePrefix))

	other, _ := searchCacheKey("integration", base)
	assert.NotEqual(t, k1, other)

	paged := base
	paged.StartCursor = "next"
	pagedKey, _ := searchCacheKey("legacy", paged)
	assert.NotEqual(t, k1, pagedKey)
}

// unreachableRedis panics on any command.
type unreachableRedis struct{ redis.Cmdable }

func TestRedisSearchCache_NonPositiveTTLSkipsWrites(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		cache := NewRedisSearchCache(unreachableRedis{}, ttl)
		assert.NotPanics(t, func() {
			err := cache.Set(context.Background(), "legacy", search.SearchParams{Query: "go"}, search.EmptySearchResults())
			assert.NoError(t, err)
		})
	}
}

func TestRedisSearchCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis test. Set REDIS_TEST_ADDR to run.")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	cache := NewRedisSearchCache(rdb, time.Minute)
	params := search.SearchParams{Query: "redis-" + time.Now().Format(time.RFC3339Nano)}

	_, ok, err := cache.Get(ctx, "legacy", params)
	require.NoError(t, err)
	assert.False(t, ok)

	want := search.EmptySearchResults()
	want.Results = append(want.Results, search.SearchResult{ID: "b1", IsNavigable: true})
	want.Total = 1
	require.NoError(t, cache.Set(ctx, "legacy", params, want))

	got, ok, err := cache.Get(ctx, "legacy", params)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
