package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/notion-blog/internal/application/service"
	"github.com/khoahotran/notion-blog/internal/domain/search"
)

const searchCachePrefix = "search:results:"

type redisSearchCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisSearchCache stores results for ttl. A non-positive ttl disables
// writes; Redis would otherwise keep the entries forever.
func NewRedisSearchCache(rdb redis.Cmdable, ttl time.Duration) service.ResultCache {
	return &redisSearchCache{rdb: rdb, ttl: ttl}
}

// searchCacheKey hashes every request field, unlike the client-side memo
// which keys on the query alone.
func searchCacheKey(strategy string, params search.SearchParams) (string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("marshal search params: %w", err)
	}
	sum := sha256.Sum256(append([]byte(strategy+"|"), raw...))
	return searchCachePrefix + hex.EncodeToString(sum[:]), nil
}

func (c *redisSearchCache) Get(ctx context.Context, strategy string, params search.SearchParams) (*search.SearchResults, bool, error) {
	key, err := searchCacheKey(strategy, params)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var results search.SearchResults
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false, fmt.Errorf("decode cached results: %w", err)
	}
	return &results, true, nil
}

func (c *redisSearchCache) Set(ctx context.Context, strategy string, params search.SearchParams, results *search.SearchResults) error {
	if c.ttl <= 0 {
		return nil
	}
	key, err := searchCacheKey(strategy, params)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
