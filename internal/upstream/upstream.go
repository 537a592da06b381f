// Package upstream contains the HTTP clients for the remote collaborators:
// the admissions API and the schedule spreadsheet export.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pkordes/exam-tracker/internal/metrics"
)

// StatusError is returned when an upstream answers with an unexpected HTTP status.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.Code)
}

// Retryable reports whether the request may succeed if repeated.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// NewHTTPClient returns the *http.Client shared by the upstream clients.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// requestID returns the inbound request ID placed by chi's RequestID
// middleware, or a fresh UUID for calls made outside a request.
func requestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// do sends req with the shared headers and records its outcome under endpoint.
func do(ctx context.Context, client *http.Client, m *metrics.Metrics, endpoint string, req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Request-ID", requestID(ctx))

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		m.RecordUpstream(endpoint, "transport_error", elapsed)
		return nil, err
	}
	m.RecordUpstream(endpoint, statusLabel(resp.StatusCode), elapsed)
	return resp, nil
}

func statusLabel(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "success"
	case code == http.StatusNotFound:
		return "not_found"
	case code >= 500:
		return "server_error"
	default:
		return "client_error"
	}
}
