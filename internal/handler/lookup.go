package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// LookupRequest is the body of POST /api/applications/lookup. The id may be
// sent as a JSON string or number.
type LookupRequest struct {
	ID json.RawMessage `json:"id"`
}

// LookupResponse is the body of a successful lookup. Exactly one of
// Application and Rejection is present, matching Result.
type LookupResponse struct {
	Result      domain.LookupKind       `json:"result"`
	Application *domain.ProcessedRecord `json:"application,omitempty"`
	Rejection   *domain.Rejection       `json:"rejection,omitempty"`
}

// LookupApplication handles POST /api/applications/lookup.
func (s *Server) LookupApplication(w http.ResponseWriter, r *http.Request) {
	var body LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeValidation, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, codeValidation, "request body must be a JSON object")
		return
	}

	id, ok := rawID(body.ID)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "id must be a string or a number")
		return
	}

	result, err := s.lookups.Lookup(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "no application found for this ID")
		return
	}

	writeJSON(w, http.StatusOK, LookupResponse{
		Result:      result.Kind,
		Application: result.Application,
		Rejection:   result.Rejection,
	})
}

// rawID returns the identifier text of a JSON string or number. A missing id
// yields "" so the service reports it as required.
func rawID(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", true
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}
