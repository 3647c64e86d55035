package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.IncrementDays("ok", 3)
	m.IncrementDays("out_of_range", 1)
	m.ObserveRange(31)
	m.IncrementObservanceWrites("create", 1)
	m.ObserveRequest("/api/v1/almanac/date/{date}", "GET", "200", 2*time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.DaysComputed.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DaysComputed.WithLabelValues("out_of_range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ObservanceWrites.WithLabelValues("create")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncrementDays("ok", 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `almanac_days_computed_total{outcome="ok"} 1`), "exposition should include the day counter")
	assert.True(t, strings.Contains(string(body), "go_goroutines"), "exposition should include Go runtime metrics")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a, b := New(), New()
	a.IncrementDays("ok", 2)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DaysComputed.WithLabelValues("ok")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	m.IncrementDays("ok", 1)
	m.ObserveRange(5)
	m.IncrementObservanceWrites("delete", 1)
	m.ObserveRequest("/health", "GET", "200", time.Millisecond)
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}
