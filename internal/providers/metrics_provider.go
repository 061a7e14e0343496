package providers

import (
	"time"

	"aad/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncSegmentsFetched()
	IncSegmentsFailed()
	IncRetries()
	IncRetriesExhausted()
	IncTokenRefresh(success bool)
	IncUpstreamPages()
	ObserveUpstreamDuration(duration time.Duration)
	ObservePipelineDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	segmentsFetched  prometheus.Counter
	segmentsFailed   prometheus.Counter
	retries          prometheus.Counter
	retriesExhausted prometheus.Counter
	tokenRefreshes   *prometheus.CounterVec
	upstreamPages    prometheus.Counter
	upstreamDuration prometheus.Histogram
	pipelineDuration prometheus.Histogram
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

func (m *MetricsProvider) IncSegmentsFetched() {
	m.segmentsFetched.Inc()
}

func (m *MetricsProvider) IncSegmentsFailed() {
	m.segmentsFailed.Inc()
}

func (m *MetricsProvider) IncRetries() {
	m.retries.Inc()
}

func (m *MetricsProvider) IncRetriesExhausted() {
	m.retriesExhausted.Inc()
}

func (m *MetricsProvider) IncTokenRefresh(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.tokenRefreshes.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncUpstreamPages() {
	m.upstreamPages.Inc()
}

func (m *MetricsProvider) ObserveUpstreamDuration(duration time.Duration) {
	m.upstreamDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePipelineDuration(duration time.Duration) {
	m.pipelineDuration.Observe(duration.Seconds())
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
			Name: "aad_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aad_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aad_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aad_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		segmentsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aad_segments_fetched_total",
			Help: "Total number of segments fetched successfully",
		}),

		segmentsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aad_segments_failed_total",
			Help: "Total number of segment fetch failures",
		}),

		retries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aad_segment_retries_total",
			Help: "Total number of segment retry attempts",
		}),

		retriesExhausted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aad_segment_retries_exhausted_total",
			Help: "Total number of segments dropped after exhausting retries",
		}),

		tokenRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aad_token_refreshes_total",
			Help: "Total number of access token refresh exchanges",
		}, []string{"result"}),

		upstreamPages: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aad_upstream_pages_total",
			Help: "Total number of upstream result pages retrieved",
		}),

		upstreamDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aad_upstream_request_duration_seconds",
			Help:    "Upstream check-in query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		pipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aad_pipeline_duration_seconds",
			Help:    "End-to-end aggregation pipeline duration in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncSegmentsFetched()                               {}
func (n *noopMetrics) IncSegmentsFailed()                                {}
func (n *noopMetrics) IncRetries()                                       {}
func (n *noopMetrics) IncRetriesExhausted()                              {}
func (n *noopMetrics) IncTokenRefresh(_ bool)                            {}
func (n *noopMetrics) IncUpstreamPages()                                 {}
func (n *noopMetrics) ObserveUpstreamDuration(_ time.Duration)           {}
func (n *noopMetrics) ObservePipelineDuration(_ time.Duration)           {}
