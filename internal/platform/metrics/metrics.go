// Package metrics exposes Prometheus counters for chart computation and calendar lookups.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calusecase "saju_backend/internal/feature/calendar/usecase"
	"saju_backend/internal/feature/chart/domain/entity"
	chartusecase "saju_backend/internal/feature/chart/usecase"
)

const namespace = "saju"

// Metrics holds the counters and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	// ChartsTotal counts computed charts.
	// Labels: month_layer, confidence
	ChartsTotal *prometheus.CounterVec

	// CalendarLookupsTotal counts calendar lookups by the layer that answered.
	// Labels: source (reference, provider, approximation, gregorian)
	CalendarLookupsTotal *prometheus.CounterVec

	// ProviderRequestsTotal counts provider outcomes.
	// Labels: outcome (cache_hit, fetched, not_found, timeout, error)
	ProviderRequestsTotal *prometheus.CounterVec
}

var (
	_ calusecase.Recorder   = (*Metrics)(nil)
	_ chartusecase.Recorder = (*Metrics)(nil)
)

// New creates the counters on a fresh registry, which also carries the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		ChartsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "computed_total",
			Help:      "Charts computed by month layer and confidence",
		}, []string{"month_layer", "confidence"}),
		CalendarLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calendar",
			Name:      "lookups_total",
			Help:      "Calendar lookups by answering source",
		}, []string{"source"}),
		ProviderRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calendar",
			Name:      "provider_requests_total",
			Help:      "Lunar provider lookups by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.ChartsTotal, m.CalendarLookupsTotal, m.ProviderRequestsTotal)
	return m
}

// ObserveChart records one computed chart.
func (m *Metrics) ObserveChart(layer entity.MonthLayer, confidence entity.Confidence) {
	m.ChartsTotal.WithLabelValues(layer.String(), confidence.String()).Inc()
}

// ObserveCalendarSource records which layer answered a calendar lookup.
func (m *Metrics) ObserveCalendarSource(source string) {
	m.CalendarLookupsTotal.WithLabelValues(source).Inc()
}

// ObserveProvider records the outcome of a provider lookup.
func (m *Metrics) ObserveProvider(outcome string) {
	m.ProviderRequestsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
