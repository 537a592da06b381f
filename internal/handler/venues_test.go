package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/handler"
	"github.com/pkordes/exam-tracker/internal/venue"
)

func TestListVenues_All(t *testing.T) {
	h := newHTTPHandler(&mockLookupServicer{}, &mockMapServicer{})

	req := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.VenueListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Data, len(venue.Table()))
}

func TestListVenues_ByName(t *testing.T) {
	h := newHTTPHandler(&mockLookupServicer{}, &mockMapServicer{})

	q := url.Values{"name": {"Bohol Island State University - Candijay Campus"}}
	req := httptest.NewRequest(http.MethodGet, "/api/venues?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var v domain.Venue
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	assert.Equal(t, "BoholIslandStateUniversity-CandijayCampus", v.Name)
}

func TestListVenues_UnknownName(t *testing.T) {
	h := newHTTPHandler(&mockLookupServicer{}, &mockMapServicer{})

	req := httptest.NewRequest(http.MethodGet, "/api/venues?name=Nowhere", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}
