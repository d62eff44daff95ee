// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	calusecase "saju_backend/internal/feature/calendar/usecase"
	"saju_backend/internal/platform/cache"
	"saju_backend/internal/platform/config"
	"saju_backend/internal/platform/externalapi/kasi"
	infrahttp "saju_backend/internal/platform/http"
	"saju_backend/internal/shared/ratelimiter"
)

// NewLunarProvider creates the KASI client with its HTTP client.
// It returns nil when no provider endpoint is configured.
func NewLunarProvider(cfg *config.Config) *kasi.LunarClient {
	kcfg := kasi.Config{
		ServiceKey: cfg.LunarAPIKey,
		BaseURL:    cfg.LunarAPIBaseURL,
		Timeout:    cfg.LunarAPITimeout,
	}
	if !kcfg.Enabled() {
		return nil
	}
	return kasi.NewLunarClient(kcfg, infrahttp.NewHTTPClient(kcfg.Timeout))
}

// NewDayCache creates a DayCache implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process cache.
func NewDayCache(rdb *redis.Client, ttl time.Duration) calusecase.DayCache {
	if rdb != nil {
		return cache.NewRedisDayCache(rdb, ttl, "calendar")
	}
	return cache.NewMemoryDayCache(ttl, nil)
}

// CalendarOptions assembles the calendar adapter options from configuration.
func CalendarOptions(cfg *config.Config, rdb *redis.Client, rec calusecase.Recorder) []calusecase.Option {
	opts := []calusecase.Option{calusecase.WithRecorder(rec)}
	if p := NewLunarProvider(cfg); p != nil {
		opts = append(opts,
			calusecase.WithProvider(p, NewDayCache(rdb, cfg.CalendarCacheTTL)),
			calusecase.WithProviderTimeout(cfg.LunarAPITimeout),
			calusecase.WithRateLimiter(ratelimiter.NewRateLimiter("kasi", cfg.LunarAPIRPS, time.Second)),
		)
	}
	return opts
}
