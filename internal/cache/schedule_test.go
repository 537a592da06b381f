package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/exam-tracker/internal/cache"
	"github.com/pkordes/exam-tracker/internal/domain"
)

// mockFetcher is a hand-written mock for cache.Fetcher.
type mockFetcher struct {
	calls atomic.Int32
	fn    func(ctx context.Context) ([]domain.ScheduleRow, error)
}

func (m *mockFetcher) FetchSchedule(ctx context.Context) ([]domain.ScheduleRow, error) {
	m.calls.Add(1)
	return m.fn(ctx)
}

// fakeClock is a settable clock for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rows(ids ...string) []domain.ScheduleRow {
	out := make([]domain.ScheduleRow, len(ids))
	for i, id := range ids {
		out[i] = domain.ScheduleRow{ApplicationID: id}
	}
	return out
}

func newCache(f *mockFetcher, clock *fakeClock) *cache.ScheduleCache {
	return cache.NewScheduleCache(f, 5*time.Minute, discardLogger(), cache.WithClock(clock.Now))
}

func TestGet_ServesFreshEntryWithoutFetching(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) { return rows("1"), nil }}
	c := newCache(f, clock)

	first, err := c.Get(context.Background())
	require.NoError(t, err)
	clock.Advance(4 * time.Minute)
	second, err := c.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestGet_RefetchesAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	n := 0
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) {
		n++
		if n == 1 {
			return rows("1"), nil
		}
		return rows("1", "2"), nil
	}}
	c := newCache(f, clock)

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)
	got, err := c.Get(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestGet_FallsBackToLastKnownGood(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	fail := false
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) {
		if fail {
			return nil, errors.New("sheet down")
		}
		return rows("1"), nil
	}}
	c := newCache(f, clock)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	fail = true
	clock.Advance(10 * time.Minute)
	got, err := c.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, rows("1"), got)
}

func TestGet_ErrorWhenNothingCached(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) {
		return nil, errors.New("sheet down")
	}}
	c := newCache(f, clock)

	got, err := c.Get(context.Background())

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) { return rows("1"), nil }}
	c := newCache(f, clock)

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	_, err = c.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.calls.Load(), "only the Get after Invalidate refetches")
}

func TestInvalidate_KeepsFallback(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	fail := false
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) {
		if fail {
			return nil, errors.New("sheet down")
		}
		return rows("1"), nil
	}}
	c := newCache(f, clock)

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	fail = true
	c.Invalidate()
	got, err := c.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, rows("1"), got)
}

func TestGet_CoalescesConcurrentRefreshes(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	release := make(chan struct{})
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) {
		<-release
		return rows("1"), nil
	}}
	c := newCache(f, clock)

	const callers = 8
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for range callers {
		go func() {
			defer done.Done()
			started.Done()
			got, err := c.Get(context.Background())
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	started.Wait()
	// Give the goroutines a moment to reach the shared fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	assert.LessOrEqual(t, f.calls.Load(), int32(2))
	assert.GreaterOrEqual(t, f.calls.Load(), int32(1))
}

func TestInvalidate_DuringRefreshIsNotLost(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)}
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f := &mockFetcher{fn: func(context.Context) ([]domain.ScheduleRow, error) {
		once.Do(func() {
			close(entered)
			<-release
		})
		return rows("1"), nil
	}}
	c := newCache(f, clock)

	done := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background())
		done <- err
	}()
	<-entered
	c.Invalidate()
	close(release)
	require.NoError(t, <-done)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.calls.Load())
}
