package providers

import (
	"rollcall/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		fresh := prometheus.NewRegistry()
		prometheus.DefaultRegisterer = fresh
		prometheus.DefaultGatherer = fresh
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: false}})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/tracks", 200)
	m.ObserveRequestDuration("/tracks", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveBackendRequest("teams", "ok", time.Millisecond)
	m.IncScans("accepted")
	m.SetOpenSessions("scan", 1)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	useTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}).(*MetricsProvider)

	m.IncScans("accepted")
	m.IncScans("accepted")
	m.IncScans("duplicate")
	m.SetOpenSessions("roster", 3)
	m.IncRequestsTotal("GET /tracks", 200)
	m.IncRequestsTotal("GET /tracks", 404)
	m.ObserveBackendRequest("submit_attendance", "ok", 5*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.scansTotal.WithLabelValues("accepted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.scansTotal.WithLabelValues("duplicate")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.openSessions.WithLabelValues("roster")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET /tracks", "4xx")))
	require.Equal(t, 1, testutil.CollectAndCount(m.backendDuration))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{502, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
