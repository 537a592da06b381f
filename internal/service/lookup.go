// Package service contains the business logic for the exam tracker API.
// Services validate inputs, orchestrate upstream and cache calls, and hand the
// results to the pure schedule core.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/metrics"
	"github.com/pkordes/exam-tracker/internal/schedule"
)

// minIDLength is the shortest application ID accepted for lookup.
const minIDLength = 3

// ApplicationFetcher reads application records from the admissions API.
// Both methods return (nil, nil) when the ID is unknown.
type ApplicationFetcher interface {
	FetchApplication(ctx context.Context, id string) (*domain.Application, error)
	FetchRejection(ctx context.Context, id string) (*domain.Rejection, error)
}

// ScheduleSource serves the schedule table, usually from a cache.
type ScheduleSource interface {
	Get(ctx context.Context) ([]domain.ScheduleRow, error)
	Invalidate()
}

// LookupService resolves an application ID to an accepted or rejected result.
type LookupService struct {
	apps      ApplicationFetcher
	schedules ScheduleSource
	merger    *schedule.Merger
	now       func() time.Time
	loc       *time.Location
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// NewLookupService constructs a LookupService. now supplies the current time,
// which is interpreted in loc for every date decision.
func NewLookupService(
	apps ApplicationFetcher,
	schedules ScheduleSource,
	merger *schedule.Merger,
	now func() time.Time,
	loc *time.Location,
	log *slog.Logger,
	m *metrics.Metrics,
) *LookupService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &LookupService{
		apps:      apps,
		schedules: schedules,
		merger:    merger,
		now:       now,
		loc:       loc,
		log:       log,
		metrics:   m,
	}
}

// Lookup fetches the accepted and rejected records for id concurrently. An
// accepted application wins and is merged with its schedule row; otherwise a
// rejection is returned; otherwise domain.ErrNotFound. Upstream failures of
// the two fetches are logged and treated as "not found".
func (s *LookupService) Lookup(ctx context.Context, id string) (domain.LookupResult, error) {
	id, err := validateApplicationID(id)
	if err != nil {
		s.metrics.RecordLookup("invalid")
		return domain.LookupResult{}, fmt.Errorf("service.LookupService.Lookup: %w", err)
	}

	var (
		app    *domain.Application
		rej    *domain.Rejection
		appErr error
		rejErr error
		g      errgroup.Group
	)
	// Each fetch records its own error so one failure never cancels the other.
	g.Go(func() error {
		app, appErr = s.apps.FetchApplication(ctx, id)
		return nil
	})
	g.Go(func() error {
		rej, rejErr = s.apps.FetchRejection(ctx, id)
		return nil
	})
	_ = g.Wait()

	if appErr != nil {
		s.log.WarnContext(ctx, "application fetch failed", "id", id, "error", appErr)
	}
	if rejErr != nil {
		s.log.WarnContext(ctx, "rejection fetch failed", "id", id, "error", rejErr)
	}

	switch {
	case app != nil:
		table, err := s.schedules.Get(ctx)
		if err != nil {
			s.metrics.RecordLookup("error")
			if !errors.Is(err, domain.ErrUpstream) {
				err = fmt.Errorf("%w: %w", domain.ErrUpstream, err)
			}
			return domain.LookupResult{}, fmt.Errorf("service.LookupService.Lookup: %w", err)
		}
		rec := s.merger.Merge(*app, id, table, s.now().In(s.loc))
		s.metrics.RecordLookup("accepted")
		return domain.LookupResult{Kind: domain.LookupAccepted, Application: &rec}, nil

	case rej != nil:
		s.metrics.RecordLookup("rejected")
		return domain.LookupResult{Kind: domain.LookupRejected, Rejection: rej}, nil

	default:
		s.metrics.RecordLookup("not_found")
		return domain.LookupResult{}, fmt.Errorf("service.LookupService.Lookup: application %s: %w", id, domain.ErrNotFound)
	}
}

// Schedule returns the full schedule table.
func (s *LookupService) Schedule(ctx context.Context) ([]domain.ScheduleRow, error) {
	rows, err := s.schedules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LookupService.Schedule: %w", err)
	}
	return rows, nil
}

// InvalidateSchedule makes the next schedule read refetch from the source.
func (s *LookupService) InvalidateSchedule() {
	s.schedules.Invalidate()
	s.log.Info("schedule cache invalidated")
}

// validateApplicationID trims id, checks it is a numeric application ID and
// returns it in canonical form without leading zeros.
func validateApplicationID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: application id is required", domain.ErrValidation)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: application id must contain digits only", domain.ErrValidation)
		}
	}
	id = strings.TrimLeft(id, "0")
	if len(id) < minIDLength {
		return "", fmt.Errorf("%w: application id must be at least %d digits", domain.ErrValidation, minIDLength)
	}
	return id, nil
}
