package providers

import (
	"rollcall/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveBackendRequest(operation string, outcome string, duration time.Duration)
	IncScans(outcome string)
	SetOpenSessions(kind string, count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	backendDuration *prometheus.HistogramVec
	scansTotal      *prometheus.CounterVec
	openSessions    *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveBackendRequest(operation string, outcome string, duration time.Duration) {
	m.backendDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncScans(outcome string) {
	m.scansTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) SetOpenSessions(kind string, count int) {
	m.openSessions.WithLabelValues(kind).Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rollcall_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		backendDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rollcall_backend_request_duration_seconds",
			Help:    "Duration of calls to the event backend in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),

		scansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_scans_total",
			Help: "Barcode detections by dedup outcome",
		}, []string{"outcome"}),

		openSessions: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rollcall_open_sessions",
			Help: "Open roster sheets and scan sessions",
		}, []string{"kind"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                          {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)          {}
func (n *noopMetrics) IncCacheHits()                                             {}
func (n *noopMetrics) IncCacheMisses()                                           {}
func (n *noopMetrics) ObserveBackendRequest(_ string, _ string, _ time.Duration) {}
func (n *noopMetrics) IncScans(_ string)                                         {}
func (n *noopMetrics) SetOpenSessions(_ string, _ int)                           {}
