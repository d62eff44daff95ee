// Package cache provides DayCache implementations for the calendar adapter.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/calendar/usecase"
)

// DefaultTTL is how long a provider result stays cached.
const DefaultTTL = 24 * time.Hour

// RedisDayCache stores provider results in Redis with a TTL.
// Redis expires entries itself, so Get never sees a stale value.
type RedisDayCache struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// RedisDayCache must satisfy the calendar adapter's DayCache.
var _ usecase.DayCache = (*RedisDayCache)(nil)

// NewRedisDayCache creates a Redis-backed day cache.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "calendar".
func NewRedisDayCache(rdb *redis.Client, ttl time.Duration, namespace string) *RedisDayCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "calendar"
	}
	return &RedisDayCache{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Get returns the cached day for key. A miss is (zero, false, nil).
func (c *RedisDayCache) Get(ctx context.Context, key string) (entity.CalendarDay, bool, error) {
	if c.rdb == nil {
		return entity.CalendarDay{}, false, nil
	}

	k := c.cacheKey(key)
	b, err := c.rdb.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.CalendarDay{}, false, nil
	}
	if err != nil {
		return entity.CalendarDay{}, false, err
	}

	var day entity.CalendarDay
	if err := json.Unmarshal(b, &day); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, k).Err()
		return entity.CalendarDay{}, false, nil
	}
	return day, true, nil
}

// Set stores day under key with the configured TTL.
func (c *RedisDayCache) Set(ctx context.Context, key string, day entity.CalendarDay) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode calendar day: %w", err)
	}
	return c.rdb.Set(ctx, c.cacheKey(key), b, c.ttl).Err()
}

// Clear deletes every cached day of the namespace.
func (c *RedisDayCache) Clear(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":day:*")
}

// cacheKey generates the Redis key for a date key.
func (c *RedisDayCache) cacheKey(key string) string {
	return fmt.Sprintf("%s:day:%s", c.namespace, safe(key))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *RedisDayCache) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
