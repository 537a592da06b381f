package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// VenueListResponse is the body of GET /api/venues.
type VenueListResponse struct {
	Data []domain.Venue `json:"data"`
}

// ListVenues handles GET /api/venues.
// With ?name= it resolves a single venue the way lookups do, ignoring case,
// spaces, hyphens and commas.
func (s *Server) ListVenues(w http.ResponseWriter, r *http.Request) {
	var name *string
	if err := runtime.BindQueryParameter("form", true, false, "name", r.URL.Query(), &name); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	if name != nil {
		v, ok := s.venues.Lookup(*name)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "venue not found")
			return
		}
		writeJSON(w, http.StatusOK, v)
		return
	}

	writeJSON(w, http.StatusOK, VenueListResponse{Data: s.venues.All()})
}
