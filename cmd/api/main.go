// Package main is the entry point for the exam tracker API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pkordes/exam-tracker/internal/cache"
	"github.com/pkordes/exam-tracker/internal/config"
	"github.com/pkordes/exam-tracker/internal/handler"
	"github.com/pkordes/exam-tracker/internal/metrics"
	"github.com/pkordes/exam-tracker/internal/middleware"
	"github.com/pkordes/exam-tracker/internal/schedule"
	"github.com/pkordes/exam-tracker/internal/service"
	"github.com/pkordes/exam-tracker/internal/upstream"
	"github.com/pkordes/exam-tracker/internal/venue"
)

// sheetRetryDelay is the first backoff step between schedule fetch attempts.
const sheetRetryDelay = 500 * time.Millisecond

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Metrics ----------------------------------------------------------
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// --- Map counter ------------------------------------------------------
	ctx := context.Background()
	counter, closeCounter, err := newCounter(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to set up map counter", "backend", cfg.CounterBackend, "error", err)
		os.Exit(1)
	}
	defer closeCounter()

	// --- Upstreams, cache, services ---------------------------------------
	httpClient := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	admissions := upstream.NewAdmissionsClient(httpClient, cfg.AdmissionsURL, cfg.RejectedURL, m)
	sheet := upstream.NewSheetClient(httpClient, cfg.SheetCSVURL, cfg.UpstreamMaxRetries, sheetRetryDelay, m)
	schedules := cache.NewScheduleCache(sheet, cfg.ScheduleCacheTTL, logger, cache.WithMetrics(m))

	venues := venue.Default()
	lookups := service.NewLookupService(admissions, schedules, schedule.NewMerger(venues), time.Now, cfg.Location, logger, m)
	maps := service.NewMapService(counter, cfg.MapsAPIKey, cfg.MapDailyLimit, time.Now, cfg.Location, logger, m)
	if cfg.MapsAPIKey == "" {
		slog.Warn("MAPS_API_KEY not set; map URLs are disabled")
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	api := handler.NewServer(lookups, maps, venues, registry, logger)
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a slow schedule fetch with retries.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"timezone", cfg.Location.String(),
			"counter_backend", cfg.CounterBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
