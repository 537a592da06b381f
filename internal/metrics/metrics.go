// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
// A nil *Metrics is valid: every Record method is a no-op on it, so tests and
// tools can skip instrumentation.
type Metrics struct {
	// Lookup metrics
	LookupsTotal *prometheus.CounterVec

	// Upstream metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamDurationSeconds *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	CacheFallbacksTotal *prometheus.CounterVec

	// Map quota metrics
	MapRequestsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered on registry.
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		LookupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "examtracker_lookups_total",
				Help: "Total application lookups by outcome",
			},
			[]string{"outcome"}, // outcome: accepted, rejected, not_found, invalid, error
		),

		UpstreamRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "examtracker_upstream_requests_total",
				Help: "Total outbound requests by endpoint and status",
			},
			[]string{"endpoint", "status"}, // endpoint: application, rejection, sheet
		),

		UpstreamDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "examtracker_upstream_duration_seconds",
				Help:    "Outbound request duration in seconds by endpoint",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "examtracker_cache_hits_total",
				Help: "Total cache hits by cache",
			},
			[]string{"cache"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "examtracker_cache_misses_total",
				Help: "Total cache misses by cache",
			},
			[]string{"cache"},
		),

		CacheFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "examtracker_cache_fallbacks_total",
				Help: "Total times stale data was served because a refresh failed",
			},
			[]string{"cache"},
		),

		MapRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "examtracker_map_requests_total",
				Help: "Total map URL requests by outcome",
			},
			[]string{"outcome"}, // outcome: served, quota_exceeded, error
		),
	}
}

// RecordLookup records a lookup outcome.
func (m *Metrics) RecordLookup(outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordUpstream records an outbound request with status and duration.
func (m *Metrics) RecordUpstream(endpoint, status string, duration float64) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.UpstreamDurationSeconds.WithLabelValues(endpoint).Observe(duration)
}

// RecordCacheHit records a cache hit.
func (m *Metrics) RecordCacheHit(cache string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func (m *Metrics) RecordCacheMiss(cache string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordCacheFallback records a stale result served after a failed refresh.
func (m *Metrics) RecordCacheFallback(cache string) {
	if m == nil {
		return
	}
	m.CacheFallbacksTotal.WithLabelValues(cache).Inc()
}

// RecordMapRequest records a map URL request outcome.
func (m *Metrics) RecordMapRequest(outcome string) {
	if m == nil {
		return
	}
	m.MapRequestsTotal.WithLabelValues(outcome).Inc()
}
