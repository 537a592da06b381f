// Package handler implements the HTTP handlers for the exam tracker API.
// All handlers are methods on Server. They are split into per-resource files
// (lookup.go, schedule.go, maps.go, ...) but share the Server's dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// LookupServicer defines the lookup and schedule operations the handlers use.
// Defined here, in the consumer package, so tests can inject a mock.
type LookupServicer interface {
	Lookup(ctx context.Context, id string) (domain.LookupResult, error)
	Schedule(ctx context.Context) ([]domain.ScheduleRow, error)
	InvalidateSchedule()
}

// MapServicer defines the map URL operations the handlers use.
type MapServicer interface {
	MapURL(ctx context.Context, lat, lng float64, venueName string) (domain.MapView, error)
	Usage(ctx context.Context) (domain.MapUsage, error)
}

// VenueDirectory lists and resolves known exam venues.
type VenueDirectory interface {
	All() []domain.Venue
	Lookup(name string) (domain.Venue, bool)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	lookups LookupServicer
	maps    MapServicer
	venues  VenueDirectory
	metrics prometheus.Gatherer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies. A nil gatherer
// leaves /metrics unregistered.
func NewServer(lookups LookupServicer, maps MapServicer, venues VenueDirectory, gatherer prometheus.Gatherer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		lookups: lookups,
		maps:    maps,
		venues:  venues,
		metrics: gatherer,
		log:     log,
	}
}

// Routes returns the API router. Cross-cutting middleware is applied by main.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/applications/lookup", s.LookupApplication)
		r.Get("/schedule", s.GetSchedule)
		r.Post("/schedule/invalidate", s.InvalidateSchedule)
		r.Get("/venues", s.ListVenues)
		r.Get("/map-url", s.GetMapURL)
		r.Get("/map-usage", s.GetMapUsage)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeValidation, "method not allowed")
	})

	return r
}
