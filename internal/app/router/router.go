// Package router はHTTPルーティングを定義します。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	calhandler "saju_backend/internal/feature/calendar/transport/handler"
	charthandler "saju_backend/internal/feature/chart/transport/handler"
	"saju_backend/internal/platform/http/handler"
	"saju_backend/internal/shared/requestid"
)

// NewRouter はすべてのエンドポイントを登録したginエンジンを生成します。
func NewRouter(charts *charthandler.ChartHandler, calendar *calhandler.CalendarHandler,
	ready *handler.ReadinessHandler, metrics http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestid.Middleware(), gin.Logger())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	// 依存先（DB・Redis）の確認
	r.GET("/readyz", ready.Ready)
	// Prometheus
	r.GET("/metrics", gin.WrapH(metrics))

	v1 := r.Group("/v1")
	{
		v1.POST("/charts", charts.Compute)
		v1.GET("/charts/now", charts.Now)
		v1.GET("/calendar/:date", calendar.GetDay)
		// プロバイダー結果のキャッシュ破棄（運用向け）
		v1.DELETE("/calendar/cache", calendar.ClearCache)
	}

	return r
}
