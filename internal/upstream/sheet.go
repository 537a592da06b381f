package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/metrics"
	"github.com/pkordes/exam-tracker/internal/sheet"
)

// SheetClient downloads and parses the schedule spreadsheet export.
type SheetClient struct {
	http       *http.Client
	url        string
	maxRetries uint64
	baseDelay  time.Duration
	metrics    *metrics.Metrics
}

// NewSheetClient constructs a SheetClient. Transient failures are retried up
// to maxRetries times with exponential backoff starting at baseDelay.
func NewSheetClient(client *http.Client, url string, maxRetries int, baseDelay time.Duration, m *metrics.Metrics) *SheetClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &SheetClient{
		http:       client,
		url:        url,
		maxRetries: uint64(maxRetries),
		baseDelay:  baseDelay,
		metrics:    m,
	}
}

// FetchSchedule downloads the export and parses it into schedule rows.
// Network errors, 429 and 5xx are retried; other statuses and malformed
// exports fail immediately.
func (c *SheetClient) FetchSchedule(ctx context.Context) ([]domain.ScheduleRow, error) {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.WithJitterPercent(25, retry.NewExponential(c.baseDelay)))

	var rows []domain.ScheduleRow
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		rows, err = c.fetchOnce(ctx)
		if err == nil {
			return nil
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return err
		}
		if errors.Is(err, sheet.ErrMalformed) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("upstream.SheetClient.FetchSchedule: %w", err)
	}
	return rows, nil
}

func (c *SheetClient) fetchOnce(ctx context.Context) ([]domain.ScheduleRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")

	resp, err := do(ctx, c.http, c.metrics, "sheet", req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: "sheet", Code: resp.StatusCode}
	}

	return sheet.Parse(resp.Body)
}
