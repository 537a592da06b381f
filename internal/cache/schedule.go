// Package cache holds the in-process schedule cache.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/metrics"
)

// DefaultTTL is how long a fetched schedule is served without refetching.
const DefaultTTL = 5 * time.Minute

const cacheName = "schedule"

// Fetcher loads the full schedule table from its source.
type Fetcher interface {
	FetchSchedule(ctx context.Context) ([]domain.ScheduleRow, error)
}

// Option configures a ScheduleCache.
type Option func(*ScheduleCache)

// WithClock replaces time.Now as the cache's clock.
func WithClock(now func() time.Time) Option {
	return func(c *ScheduleCache) { c.now = now }
}

// WithMetrics records hits, misses and fallbacks on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *ScheduleCache) { c.metrics = m }
}

// ScheduleCache keeps the last fetched schedule table for a TTL. Concurrent
// refreshes share one fetch. When a refresh fails the previous table, if any,
// keeps being served.
type ScheduleCache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger
	metrics *metrics.Metrics
	group   singleflight.Group

	mu        sync.RWMutex
	rows      []domain.ScheduleRow
	fetchedAt time.Time
	loaded    bool // rows holds a successful fetch
	stale     bool   // set by Invalidate
	gen       uint64 // bumped by Invalidate
}

// NewScheduleCache returns an empty cache in front of fetcher. A ttl of zero
// or less uses DefaultTTL.
func NewScheduleCache(fetcher Fetcher, ttl time.Duration, log *slog.Logger, opts ...Option) *ScheduleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &ScheduleCache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the schedule table. Callers must not modify the returned slice.
func (c *ScheduleCache) Get(ctx context.Context) ([]domain.ScheduleRow, error) {
	if rows, ok := c.fresh(); ok {
		c.metrics.RecordCacheHit(cacheName)
		return rows, nil
	}
	c.metrics.RecordCacheMiss(cacheName)

	v, err, _ := c.group.Do(cacheName, func() (any, error) {
		// The shared fetch must outlive any single caller's cancellation.
		return c.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.ScheduleRow), nil
}

// Invalidate forces the next Get to refetch. The current table is kept as the
// fallback for a failed refetch.
func (c *ScheduleCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.gen++
	c.mu.Unlock()
}

func (c *ScheduleCache) fresh() ([]domain.ScheduleRow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded || c.stale || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.rows, true
}

func (c *ScheduleCache) refresh(ctx context.Context) ([]domain.ScheduleRow, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	rows, err := c.fetcher.FetchSchedule(ctx)
	if err != nil {
		c.mu.RLock()
		prev, loaded, fetchedAt := c.rows, c.loaded, c.fetchedAt
		c.mu.RUnlock()

		if !loaded {
			return nil, fmt.Errorf("cache.ScheduleCache.Get: %w: %w", domain.ErrUpstream, err)
		}
		c.metrics.RecordCacheFallback(cacheName)
		c.log.Warn("schedule refresh failed, serving cached copy",
			"error", err,
			"rows", len(prev),
			"fetched_at", fetchedAt,
		)
		return prev, nil
	}

	c.mu.Lock()
	c.rows = rows
	c.fetchedAt = c.now()
	c.loaded = true
	// An Invalidate during the fetch keeps the table stale.
	if c.gen == gen {
		c.stale = false
	}
	c.mu.Unlock()

	c.log.Debug("schedule refreshed", "rows", len(rows))
	return rows, nil
}
