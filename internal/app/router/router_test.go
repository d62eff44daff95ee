package router_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"saju_backend/internal/app/router"
	calhandler "saju_backend/internal/feature/calendar/transport/handler"
	calusecase "saju_backend/internal/feature/calendar/usecase"
	charthandler "saju_backend/internal/feature/chart/transport/handler"
	chartusecase "saju_backend/internal/feature/chart/usecase"
	"saju_backend/internal/platform/http/handler"
	"saju_backend/internal/platform/metrics"
	"saju_backend/internal/shared/requestid"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setup() *gin.Engine {
	m := metrics.New()
	calendar := calusecase.NewAdapter(nil, calusecase.WithRecorder(m))
	charts := chartusecase.NewChartUsecase(calendar, chartusecase.NewYearTermTable(nil),
		chartusecase.WithChartRecorder(m),
		chartusecase.WithClock(func() time.Time { return time.Date(2024, 2, 10, 3, 0, 0, 0, time.UTC) }))
	return router.NewRouter(
		charthandler.NewChartHandler(charts),
		calhandler.NewCalendarHandler(calendar),
		handler.NewReadinessHandler(nil),
		m.Handler(),
	)
}

// TestRouter_Endpoints は主要なエンドポイントが登録され、エンドツーエンドで応答することを検証します。
func TestRouter_Endpoints(t *testing.T) {
	r := setup()

	tests := []struct {
		method         string
		path           string
		body           string
		expectedStatus int
		contains       string
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK, `"ok"`},
		{http.MethodGet, "/readyz", "", http.StatusOK, `"ok"`},
		{http.MethodPost, "/v1/charts", `{"birth_date":"2024-02-10","hour":12}`, http.StatusOK, `"hanja":"甲辰"`},
		{http.MethodGet, "/v1/charts/now", "", http.StatusOK, `"庚午"`},
		{http.MethodGet, "/v1/calendar/2024-02-10", "", http.StatusOK, `"source":"approximation"`},
		{http.MethodDelete, "/v1/calendar/cache", "", http.StatusNoContent, ""},
		{http.MethodGet, "/metrics", "", http.StatusOK, `saju_chart_computed_total`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(requestid.Header))
			if tt.contains != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.contains), w.Body.String())
			}
		})
	}
}
