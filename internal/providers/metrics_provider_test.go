package providers

import (
	"testing"
	"time"

	"aad/internal/structures"

	"github.com/stretchr/testify/assert"
)

func TestNewMetricsProvider_DisabledReturnsNoop(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: false}}
	m := NewMetricsProvider(conf)
	assert.IsType(t, &noopMetrics{}, m)

	// noop must tolerate every call
	m.IncRequestsTotal("/attendance", 200)
	m.ObserveRequestDuration("/attendance", time.Second)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncSegmentsFetched()
	m.IncSegmentsFailed()
	m.IncRetries()
	m.IncRetriesExhausted()
	m.IncTokenRefresh(true)
	m.IncUpstreamPages()
	m.ObserveUpstreamDuration(time.Second)
	m.ObservePipelineDuration(time.Second)
}

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "1xx", httpStatusBucket(100))
	assert.Equal(t, "2xx", httpStatusBucket(200))
	assert.Equal(t, "3xx", httpStatusBucket(302))
	assert.Equal(t, "4xx", httpStatusBucket(404))
	assert.Equal(t, "5xx", httpStatusBucket(502))
}
