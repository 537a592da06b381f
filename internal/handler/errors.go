package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// Error codes carried in ErrorResponse.Error.Code.
const (
	codeNotFound      = "not_found"
	codeValidation    = "validation_error"
	codeUpstream      = "upstream_error"
	codeQuotaExceeded = "quota_exceeded"
	codeInternal      = "internal_error"
)

// ErrorResponse is the JSON envelope for every error the API returns.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is a machine-readable code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service error to its status and envelope.
// Upstream failures take precedence over the errors they wrap. Unrecognised
// errors are logged and reported as a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrUpstream):
		s.log.ErrorContext(r.Context(), "upstream failure", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, codeUpstream, "an upstream service is unavailable, please try again later")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFoundMessage)
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, codeQuotaExceeded, "daily request limit reached")
	case errors.Is(err, domain.ErrNotConfigured):
		s.log.ErrorContext(r.Context(), "feature not configured", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "service is not configured")
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// unwrapMessage extracts the human-readable part that follows the sentinel in
// a wrapped error, e.g.
// "service.LookupService.Lookup: validation error: application id is required"
// becomes "application id is required".
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
