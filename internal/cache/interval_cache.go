// Package cache implements the TTL cache over fetched native-interval
// candle series, adapted from the teacher's QueryResultCache
// (query_result_cache.go): same Get/Set/Invalidate/Stats shape, same
// Redis client, but keyed on (marketPrefix:symbol, sourceInterval) rather
// than a query hash, and with a per-request TTL instead of one cache-wide
// TTL, since every interval's own TTL is derived from its unit (§4.5).
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vantage-quant/taengine/internal/candle"
	"github.com/vantage-quant/taengine/internal/interval"
)

// minTTL and maxTTL bound every computed TTL (§4.5): at least one minute,
// at most 30 days.
const (
	minTTL = 60 * time.Second
	maxTTL = 2_592_000 * time.Second
)

// TTLFor derives a cache TTL from a source interval: roughly one bar's
// worth of wall-clock time, clamped to [minTTL, maxTTL]. An unparseable
// interval gets minTTL (fail toward re-fetching, not toward staleness).
func TTLFor(sourceInterval string) time.Duration {
	d, err := interval.Duration(sourceInterval)
	if err != nil {
		return minTTL
	}
	if d < minTTL {
		return minTTL
	}
	if d > maxTTL {
		return maxTTL
	}
	return d
}

// Stats tracks cache hit/miss/set counters.
type Stats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// IntervalCache caches fetched candle series keyed on the native interval
// actually fetched — never the interval the caller requested — so one
// fetch at, say, 1h serves every derived interval a planner maps onto 1h
// (4h, 1d, and so on).
type IntervalCache struct {
	redis *redis.Client
	mu    sync.Mutex
	stats Stats
}

func NewIntervalCache(redisClient *redis.Client) *IntervalCache {
	return &IntervalCache{redis: redisClient}
}

func (c *IntervalCache) key(marketPrefix, symbol, sourceInterval string) string {
	return fmt.Sprintf("taengine:candles:%s:%s:%s", marketPrefix, symbol, sourceInterval)
}

// Get returns the cached candle series for (marketPrefix, symbol,
// sourceInterval), if present and unexpired.
func (c *IntervalCache) Get(ctx context.Context, marketPrefix, symbol, sourceInterval string) ([]candle.Candle, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, c.key(marketPrefix, symbol, sourceInterval)).Result()
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.stats.Misses++
		return nil, false
	}
	var candles []candle.Candle
	if err := json.Unmarshal([]byte(data), &candles); err != nil {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return candles, true
}

// Set stores candles for (marketPrefix, symbol, sourceInterval) with a TTL
// derived from sourceInterval via TTLFor.
func (c *IntervalCache) Set(ctx context.Context, marketPrefix, symbol, sourceInterval string, candles []candle.Candle) error {
	if c.redis == nil {
		return nil
	}
	data, err := json.Marshal(candles)
	if err != nil {
		return fmt.Errorf("marshal candle series: %w", err)
	}
	ttl := TTLFor(sourceInterval)
	if err := c.redis.Set(ctx, c.key(marketPrefix, symbol, sourceInterval), data, ttl).Err(); err != nil {
		return fmt.Errorf("set interval cache: %w", err)
	}
	c.mu.Lock()
	c.stats.Sets++
	c.mu.Unlock()
	return nil
}

// Invalidate removes every cached entry for (marketPrefix, symbol) across
// all source intervals.
func (c *IntervalCache) Invalidate(ctx context.Context, marketPrefix, symbol string) error {
	if c.redis == nil {
		return nil
	}
	pattern := c.key(marketPrefix, symbol, "*")
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(ctx, keys...).Err()
}

// GetStats returns a snapshot of hit/miss/set counters.
func (c *IntervalCache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HitRate returns the hit percentage, or 0 with no lookups yet.
func (c *IntervalCache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// HealthCheck pings the underlying Redis connection, satisfying
// internal/health's RedisHealthChecker interface.
func (c *IntervalCache) HealthCheck(ctx context.Context) error {
	if c.redis == nil {
		return fmt.Errorf("redis client not configured")
	}
	return c.redis.Ping(ctx).Err()
}
