package cache

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/domain"
	"strconv"

	"github.com/dgraph-io/ristretto"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// USDRateKey is the well-known key the USD rate lives under, in both backends.
const USDRateKey = "usd_rate"

// RedisRateCache keeps the rate as a decimal string without expiry; the scheduler refreshes it.
type RedisRateCache struct {
	rdb *redis.Client
	key string
}

func NewRedisRateCache(rdb *redis.Client) *RedisRateCache {
	return &RedisRateCache{rdb: rdb, key: USDRateKey}
}

func (c *RedisRateCache) Get(ctx context.Context) (float64, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: get %q: %v", domain.ErrCacheUnavailable, c.key, err)
	}
	return parseRate(c.key, raw)
}

func (c *RedisRateCache) Set(ctx context.Context, rate float64) error {
	if err := c.rdb.Set(ctx, c.key, formatRate(rate), 0).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %v", domain.ErrCacheUnavailable, c.key, err)
	}
	return nil
}

// MemoryRateCache is the single-process backend. Values go through the same
// string encoding as Redis so both backends behave identically on bad data.
type MemoryRateCache struct {
	cache *ristretto.Cache
}

func NewMemoryRateCache() (*MemoryRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &MemoryRateCache{cache: c}, nil
}

func (c *MemoryRateCache) Get(_ context.Context) (float64, bool, error) {
	v, ok := c.cache.Get(USDRateKey)
	if !ok {
		return 0, false, nil
	}
	raw, ok := v.(string)
	if !ok {
		return 0, false, nil
	}
	return parseRate(USDRateKey, raw)
}

func (c *MemoryRateCache) Set(_ context.Context, rate float64) error {
	if !c.cache.Set(USDRateKey, formatRate(rate), 1) {
		return fmt.Errorf("%w: set %q was dropped", domain.ErrCacheUnavailable, USDRateKey)
	}
	// ristretto applies writes asynchronously; readers must see the value right away
	c.cache.Wait()
	return nil
}

func (c *MemoryRateCache) Close() { c.cache.Close() }

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// parseRate treats an unparsable stored value as a miss, so the caller falls back to a live fetch.
func parseRate(key, raw string) (float64, bool, error) {
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cached rate is malformed, ignoring it")
		return 0, false, nil
	}
	return rate, true, nil
}
