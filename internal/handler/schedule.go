package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// csvHeaders is the first row of a CSV schedule download.
var csvHeaders = []string{
	"application_id", "campus", "course", "venue", "date", "time", "postponement_remarks",
}

// ScheduleResponse is the JSON body of GET /api/schedule.
type ScheduleResponse struct {
	Data       []domain.ScheduleRow `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// Pagination describes the page returned in a paginated listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// scheduleParams are the query parameters of GET /api/schedule.
type scheduleParams struct {
	Format *string
	Page   *int
	Limit  *int
}

// GetSchedule handles GET /api/schedule.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
// Use ?format=csv to receive the whole table as CSV; default is JSON.
func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	var p scheduleParams
	q := r.URL.Query()
	for name, dest := range map[string]any{"format": &p.Format, "page": &p.Page, "limit": &p.Limit} {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, err.Error())
			return
		}
	}

	rows, err := s.lookups.Schedule(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "schedule not found")
		return
	}

	if p.Format != nil && *p.Format == "csv" {
		writeScheduleCSV(w, rows)
		return
	}

	page := domain.NewPaginationParams(p.Page, p.Limit)
	start, end := page.Bounds(len(rows))
	data := make([]domain.ScheduleRow, end-start)
	copy(data, rows[start:end])
	writeJSON(w, http.StatusOK, ScheduleResponse{
		Data: data,
		Pagination: Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: len(rows),
		},
	})
}

// InvalidateSchedule handles POST /api/schedule/invalidate.
func (s *Server) InvalidateSchedule(w http.ResponseWriter, _ *http.Request) {
	s.lookups.InvalidateSchedule()
	w.WriteHeader(http.StatusNoContent)
}

// writeScheduleCSV encodes rows as CSV, one schedule row per line.
func writeScheduleCSV(w http.ResponseWriter, rows []domain.ScheduleRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		_ = cw.Write([]string{
			r.ApplicationID, r.Campus, r.Course, r.Venue, r.Date, r.Time, r.PostponementRemarks,
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
