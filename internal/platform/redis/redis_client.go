// Package redis creates the Redis client used by the provider cache.
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"saju_backend/internal/platform/config"
)

// pingTimeout は起動時の接続確認の上限時間です。
const pingTimeout = 3 * time.Second

// NewRedisClient は設定に従ってRedisクライアントを生成し、接続を確認します。
// REDIS_HOST が未設定の場合は (nil, nil) を返し、呼び出し側はインメモリキャッシュを使います。
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}
	addr := cfg.RedisAddr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
