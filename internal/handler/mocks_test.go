package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/handler"
	"github.com/pkordes/exam-tracker/internal/venue"
)

// mockLookupServicer is a test double for handler.LookupServicer.
// Set only the method fields your test needs.
type mockLookupServicer struct {
	lookup      func(ctx context.Context, id string) (domain.LookupResult, error)
	schedule    func(ctx context.Context) ([]domain.ScheduleRow, error)
	invalidated int
}

func (m *mockLookupServicer) Lookup(ctx context.Context, id string) (domain.LookupResult, error) {
	return m.lookup(ctx, id)
}
func (m *mockLookupServicer) Schedule(ctx context.Context) ([]domain.ScheduleRow, error) {
	return m.schedule(ctx)
}
func (m *mockLookupServicer) InvalidateSchedule() { m.invalidated++ }

// mockMapServicer is a test double for handler.MapServicer.
type mockMapServicer struct {
	mapURL func(ctx context.Context, lat, lng float64, venueName string) (domain.MapView, error)
	usage  func(ctx context.Context) (domain.MapUsage, error)
}

func (m *mockMapServicer) MapURL(ctx context.Context, lat, lng float64, venueName string) (domain.MapView, error) {
	return m.mapURL(ctx, lat, lng, venueName)
}
func (m *mockMapServicer) Usage(ctx context.Context) (domain.MapUsage, error) {
	return m.usage(ctx)
}

// compile-time checks.
var (
	_ handler.LookupServicer = (*mockLookupServicer)(nil)
	_ handler.MapServicer    = (*mockMapServicer)(nil)
	_ handler.VenueDirectory = (*venue.Resolver)(nil)
)

// newHTTPHandler wires a Server with the given mocks the way main.go does.
func newHTTPHandler(lookups handler.LookupServicer, maps handler.MapServicer) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(lookups, maps, venue.Default(), prometheus.NewRegistry(), log).Routes()
}
