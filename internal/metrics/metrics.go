// Package metrics exposes Prometheus instrumentation for the almanac service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP requests by route pattern, method and status
	RequestDuration *prometheus.HistogramVec

	// Day records computed, by outcome (ok, invalid_input, out_of_range, error)
	DaysComputed *prometheus.CounterVec

	// Days per range request
	RangeSize prometheus.Histogram

	// Observances written or removed, by operation
	ObservanceWrites *prometheus.CounterVec
}

// New creates a registry with the Go and process collectors and registers
// the service metrics on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "almanac_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method", "status"}),

		DaysComputed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "almanac_days_computed_total",
			Help: "Day records computed by outcome",
		}, []string{"outcome"}),

		RangeSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "almanac_range_days",
			Help:    "Number of days requested per range query",
			Buckets: []float64{1, 7, 14, 31, 62, 92, 183, 366},
		}),

		ObservanceWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "almanac_observance_writes_total",
			Help: "Observance writes by operation",
		}, []string{"operation"}), // create, delete, import
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry, for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementDays records n computed days with the given outcome.
func (m *Metrics) IncrementDays(outcome string, n int) {
	if m != nil {
		m.DaysComputed.WithLabelValues(outcome).Add(float64(n))
	}
}

// ObserveRange records the size of a range query.
func (m *Metrics) ObserveRange(days int) {
	if m != nil {
		m.RangeSize.Observe(float64(days))
	}
}

// IncrementObservanceWrites records an observance write.
func (m *Metrics) IncrementObservanceWrites(operation string, n int) {
	if m != nil {
		m.ObservanceWrites.WithLabelValues(operation).Add(float64(n))
	}
}
