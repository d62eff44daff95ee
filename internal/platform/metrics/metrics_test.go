package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saju_backend/internal/feature/chart/domain/entity"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveChart(entity.MonthLayerSolarTerm, entity.ConfidenceStandard)
	m.ObserveChart(entity.MonthLayerSolarTerm, entity.ConfidenceStandard)
	m.ObserveChart(entity.MonthLayerArithmetic, entity.ConfidenceLow)
	m.ObserveCalendarSource("reference")
	m.ObserveProvider("timeout")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChartsTotal.WithLabelValues("solar_term", "standard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChartsTotal.WithLabelValues("arithmetic", "low")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalendarLookupsTotal.WithLabelValues("reference")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("timeout")))
}

// TestMetrics_Handler は /metrics の出力にカウンタが含まれることを検証します。
func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveProvider("fetched")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `saju_calendar_provider_requests_total{outcome="fetched"} 1`)
}
