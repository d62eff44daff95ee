// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// readyTimeout は依存先チェック全体の上限時間です。
const readyTimeout = 2 * time.Second

// Checker は依存先（DB・Redisなど）の疎通を確認します。
type Checker func(ctx context.Context) error

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// プロセスが応答できれば常に成功し、依存先は確認しません。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadinessHandler は依存先の疎通を確認する /readyz エンドポイントを処理します。
type ReadinessHandler struct {
	checks map[string]Checker
}

// NewReadinessHandler は名前付きのチェックでReadinessHandlerを生成します。
func NewReadinessHandler(checks map[string]Checker) *ReadinessHandler {
	return &ReadinessHandler{checks: checks}
}

// Ready はすべてのチェックが成功すれば200、1つでも失敗すれば503を返します。
func (h *ReadinessHandler) Ready(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
