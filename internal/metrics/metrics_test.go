package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/exam-tracker/internal/metrics"
)

func TestNew_RegistersEveryCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	require.NotNil(t, m)
	assert.NotNil(t, m.LookupsTotal)
	assert.NotNil(t, m.UpstreamRequestsTotal)
	assert.NotNil(t, m.UpstreamDurationSeconds)
	assert.NotNil(t, m.CacheHitsTotal)
	assert.NotNil(t, m.CacheMissesTotal)
	assert.NotNil(t, m.CacheFallbacksTotal)
	assert.NotNil(t, m.MapRequestsTotal)
}

func TestRecord_IncrementsCounters(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordLookup("accepted")
	m.RecordLookup("accepted")
	m.RecordUpstream("sheet", "success", 0.3)
	m.RecordCacheHit("schedule")
	m.RecordCacheMiss("schedule")
	m.RecordCacheFallback("schedule")
	m.RecordMapRequest("quota_exceeded")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("sheet", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheFallbacksTotal.WithLabelValues("schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MapRequestsTotal.WithLabelValues("quota_exceeded")))
}

func TestRecord_NilMetricsIsNoOp(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.RecordLookup("accepted")
		m.RecordUpstream("sheet", "error", 1)
		m.RecordCacheHit("schedule")
		m.RecordCacheMiss("schedule")
		m.RecordCacheFallback("schedule")
		m.RecordMapRequest("served")
	})
}
