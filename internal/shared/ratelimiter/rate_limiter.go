// Package ratelimiter は外部API呼び出しなどの操作の頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter はトークンバケット方式で操作の頻度を制限します。
type RateLimiter struct {
	limiter *rate.Limiter
	name    string
}

// NewRateLimiter は interval あたり limit 回までの呼び出しを許可するRateLimiterを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(name string, limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0), name: name}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{limiter: rate.NewLimiter(every, limit), name: name}
}

// Wait はトークンが得られるまで待機します。ctx がキャンセルされた場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limiter.Allow() {
		return nil
	}
	slog.Debug("rate limit reached, waiting", "limiter", rl.name)
	return rl.limiter.Wait(ctx)
}
