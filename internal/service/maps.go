package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/metrics"
	"github.com/pkordes/exam-tracker/internal/quota"
	"github.com/pkordes/exam-tracker/internal/venue"
)

// MapService hands out embeddable map URLs under a daily request quota.
type MapService struct {
	counter quota.Counter
	apiKey  string
	limit   int
	now     func() time.Time
	loc     *time.Location
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewMapService constructs a MapService. An empty apiKey makes every MapURL
// call fail with domain.ErrNotConfigured.
func NewMapService(
	counter quota.Counter,
	apiKey string,
	limit int,
	now func() time.Time,
	loc *time.Location,
	log *slog.Logger,
	m *metrics.Metrics,
) *MapService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &MapService{
		counter: counter,
		apiKey:  apiKey,
		limit:   limit,
		now:     now,
		loc:     loc,
		log:     log,
		metrics: m,
	}
}

// MapURL counts one request against today's quota and returns the embed URL
// for the given coordinates. A count above the limit returns a
// *domain.QuotaError carrying that count.
func (s *MapService) MapURL(ctx context.Context, lat, lng float64, venueName string) (domain.MapView, error) {
	if s.apiKey == "" {
		s.metrics.RecordMapRequest("error")
		return domain.MapView{}, fmt.Errorf("service.MapService.MapURL: maps api key: %w", domain.ErrNotConfigured)
	}

	day := s.today()
	count, err := s.counter.Increment(ctx, day)
	if err != nil {
		s.metrics.RecordMapRequest("error")
		return domain.MapView{}, fmt.Errorf("service.MapService.MapURL: %w", err)
	}
	if count > s.limit {
		s.metrics.RecordMapRequest("quota_exceeded")
		s.log.WarnContext(ctx, "daily map quota exceeded", "day", day, "count", count, "limit", s.limit)
		return domain.MapView{}, fmt.Errorf("service.MapService.MapURL: %w", &domain.QuotaError{Count: count, Limit: s.limit})
	}

	s.metrics.RecordMapRequest("served")
	c := domain.Coordinates{Lat: lat, Lng: lng}
	return domain.MapView{
		URL:          venue.EmbedURL(s.apiKey, c, strings.TrimSpace(venueName)),
		RequestCount: count,
	}, nil
}

// Usage reports today's map request count against the limit.
func (s *MapService) Usage(ctx context.Context) (domain.MapUsage, error) {
	day := s.today()
	count, err := s.counter.Current(ctx, day)
	if err != nil {
		return domain.MapUsage{}, fmt.Errorf("service.MapService.Usage: %w", err)
	}
	return domain.MapUsage{Day: day, Count: count, Limit: s.limit}, nil
}

func (s *MapService) today() string {
	return quota.Day(s.now().In(s.loc))
}
