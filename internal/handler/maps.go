package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// MapURLResponse is the body of a served GET /api/map-url.
type MapURLResponse struct {
	MapURL       string `json:"mapUrl"`
	RequestCount int    `json:"requestCount"`
}

// QuotaResponse is the 429 body of GET /api/map-url.
type QuotaResponse struct {
	Error        string `json:"error"`
	LimitReached bool   `json:"limitReached"`
	RequestCount int    `json:"requestCount"`
}

// MapUsageResponse is the body of GET /api/map-usage.
type MapUsageResponse struct {
	Count int                `json:"count"`
	Limit int                `json:"limit"`
	Day   openapi_types.Date `json:"day"`
}

// mapURLParams are the query parameters of GET /api/map-url.
type mapURLParams struct {
	Lat   float64
	Lng   float64
	Venue *string
}

// GetMapURL handles GET /api/map-url?lat=&lng=&venue=.
func (s *Server) GetMapURL(w http.ResponseWriter, r *http.Request) {
	var p mapURLParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "lat", q, &p.Lat); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "lat and lng are required numbers")
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "lng", q, &p.Lng); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "lat and lng are required numbers")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "venue", q, &p.Venue); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	venue := ""
	if p.Venue != nil {
		venue = *p.Venue
	}

	view, err := s.maps.MapURL(r.Context(), p.Lat, p.Lng, venue)
	if err != nil {
		var quotaErr *domain.QuotaError
		if errors.As(err, &quotaErr) {
			writeJSON(w, http.StatusTooManyRequests, QuotaResponse{
				Error:        "Daily map request limit reached",
				LimitReached: true,
				RequestCount: quotaErr.Count,
			})
			return
		}
		s.writeServiceError(w, r, err, "map not found")
		return
	}

	writeJSON(w, http.StatusOK, MapURLResponse{MapURL: view.URL, RequestCount: view.RequestCount})
}

// GetMapUsage handles GET /api/map-usage.
func (s *Server) GetMapUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := s.maps.Usage(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "usage not found")
		return
	}

	day, err := time.Parse("2006-01-02", usage.Day)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, MapUsageResponse{
		Count: usage.Count,
		Limit: usage.Limit,
		Day:   openapi_types.Date{Time: day},
	})
}
