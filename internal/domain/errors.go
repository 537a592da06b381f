package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no accepted or rejected application exists for
// the requested identifier, or when a venue lookup has no match.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails validation
// (e.g. an application ID that is empty or not numeric).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUpstream is returned when a remote collaborator (admissions API or the
// schedule spreadsheet) fails and no cached fallback is available.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("upstream error")

// ErrQuotaExceeded is returned when the daily map request quota is used up.
// Handlers should map this to HTTP 429 Too Many Requests.
var ErrQuotaExceeded = errors.New("daily quota exceeded")

// ErrNotConfigured is returned when a feature depends on configuration that
// was not provided (e.g. a missing maps API key).
var ErrNotConfigured = errors.New("not configured")

// QuotaError carries the request count observed when the quota was exceeded.
// It wraps ErrQuotaExceeded so callers can match it with errors.Is.
type QuotaError struct {
	Count int
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s: %d of %d requests used", ErrQuotaExceeded, e.Count, e.Limit)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}
