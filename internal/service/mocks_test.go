package service_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/quota"
	"github.com/pkordes/exam-tracker/internal/service"
	"github.com/pkordes/exam-tracker/internal/sheet"
)

// mockFetcher is a hand-written test double for service.ApplicationFetcher.
// Each method is a function field; set only the ones a test needs.
type mockFetcher struct {
	fetchApplication func(ctx context.Context, id string) (*domain.Application, error)
	fetchRejection   func(ctx context.Context, id string) (*domain.Rejection, error)
}

func (m *mockFetcher) FetchApplication(ctx context.Context, id string) (*domain.Application, error) {
	if m.fetchApplication == nil {
		return nil, nil
	}
	return m.fetchApplication(ctx, id)
}
func (m *mockFetcher) FetchRejection(ctx context.Context, id string) (*domain.Rejection, error) {
	if m.fetchRejection == nil {
		return nil, nil
	}
	return m.fetchRejection(ctx, id)
}

// mockSchedules is a hand-written test double for service.ScheduleSource.
type mockSchedules struct {
	get         func(ctx context.Context) ([]domain.ScheduleRow, error)
	invalidated int
}

func (m *mockSchedules) Get(ctx context.Context) ([]domain.ScheduleRow, error) {
	return m.get(ctx)
}
func (m *mockSchedules) Invalidate() { m.invalidated++ }

// mockCounter is a hand-written test double for quota.Counter.
type mockCounter struct {
	increment func(ctx context.Context, day string) (int, error)
	current   func(ctx context.Context, day string) (int, error)
}

func (m *mockCounter) Increment(ctx context.Context, day string) (int, error) {
	return m.increment(ctx, day)
}
func (m *mockCounter) Current(ctx context.Context, day string) (int, error) {
	return m.current(ctx, day)
}

// compile-time checks.
var (
	_ service.ApplicationFetcher = (*mockFetcher)(nil)
	_ service.ScheduleSource     = (*mockSchedules)(nil)
	_ quota.Counter              = (*mockCounter)(nil)
)

var manila = time.FixedZone("PHT", 8*60*60)

// fixedNow returns a clock stuck at the given Manila wall time.
func fixedNow(year int, month time.Month, day, hour, minute int) func() time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, manila)
	return func() time.Time { return t }
}

// sheetFetcher serves a fixed CSV export through the real parser.
type sheetFetcher string

func (f sheetFetcher) FetchSchedule(context.Context) ([]domain.ScheduleRow, error) {
	return sheet.Parse(strings.NewReader(string(f)))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
