// Package requestid はリクエストごとの識別子を付与するginミドルウェアを提供します。
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"saju_backend/internal/platform/logger"
)

// Header はリクエストIDを受け渡すHTTPヘッダー名です。
const Header = "X-Request-ID"

// Middleware はリクエストIDをcontextとレスポンスヘッダーに設定します。
// クライアントがヘッダーで指定した値があればそれを引き継ぎ、なければUUIDを発行します。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(Header, id)
		c.Next()
	}
}
