package cache

import (
	"context"
	"sync"
	"time"

	"saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/calendar/usecase"
)

type memoryEntry struct {
	day       entity.CalendarDay
	fetchedAt time.Time
}

// MemoryDayCache is an in-process day cache used when Redis is not configured.
// Each entry remembers when it was stored and is treated as a miss once older than the TTL.
type MemoryDayCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ usecase.DayCache = (*MemoryDayCache)(nil)

// NewMemoryDayCache creates an in-memory day cache. If ttl is 0, it defaults to 24 hours.
// now may be nil, in which case time.Now is used.
func NewMemoryDayCache(ttl time.Duration, now func() time.Time) *MemoryDayCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryDayCache{entries: make(map[string]memoryEntry), ttl: ttl, now: now}
}

// Get returns the cached day for key if it has not expired.
func (c *MemoryDayCache) Get(_ context.Context, key string) (entity.CalendarDay, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return entity.CalendarDay{}, false, nil
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		c.mu.Lock()
		// another writer may have refreshed the entry meanwhile
		if cur, ok := c.entries[key]; ok && cur.fetchedAt.Equal(e.fetchedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return entity.CalendarDay{}, false, nil
	}
	return e.day, true, nil
}

// Set stores day under key. Concurrent writers for the same key are last-writer-wins.
func (c *MemoryDayCache) Set(_ context.Context, key string, day entity.CalendarDay) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{day: day, fetchedAt: c.now()}
	c.mu.Unlock()
	return nil
}

// Clear drops every entry.
func (c *MemoryDayCache) Clear(context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// Len returns the number of entries, expired ones included.
func (c *MemoryDayCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
