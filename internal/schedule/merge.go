package schedule

import (
	"strings"
	"time"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/venue"
)

// Merger attaches schedule facts and venue coordinates to applications.
type Merger struct {
	venues *venue.Resolver
}

// NewMerger constructs a Merger that resolves venue coordinates with venues.
// A nil resolver disables coordinate lookup.
func NewMerger(venues *venue.Resolver) *Merger {
	return &Merger{venues: venues}
}

// Merge builds the processed record for app. The schedule row is the first
// one in table whose ApplicationID equals applicationID exactly; callers must
// normalize the identifier to its string form first. A missing row is not an
// error: every schedule-derived field falls back to its default.
func (m *Merger) Merge(app domain.Application, applicationID string, table []domain.ScheduleRow, now time.Time) domain.ProcessedRecord {
	var row domain.ScheduleRow
	for _, r := range table {
		if r.ApplicationID == applicationID {
			row = r
			break
		}
	}

	isPostponed := strings.TrimSpace(row.PostponementRemarks) != ""
	var postponed string
	if isPostponed {
		postponed, _ = ExtractPostponedDate(row.PostponementRemarks)
	}

	date := firstNonEmpty(row.Date)
	clock := firstNonEmpty(row.Time)
	isToday := date != domain.NotAvailable && ClassifyDate(date, now) == domain.DateToday
	state := ResolveStatus(date, clock, isPostponed, postponed, now)

	rec := domain.ProcessedRecord{
		ID:            app.ID,
		FirstName:     app.FirstName,
		MiddleName:    app.MiddleName,
		LastName:      app.LastName,
		CourseCode:    app.CourseCode,
		ExamVenue:     app.ExamVenue,
		Campus:        firstNonEmpty(row.Campus, app.Campus),
		Email:         app.Email,
		Date:          date,
		Time:          clock,
		Course:        firstNonEmpty(row.Course, app.CourseCode),
		Venue:         firstNonEmpty(app.ExamVenue),
		Remarks:       domain.NotAvailable,
		IsPostponed:   isPostponed,
		PostponedDate: postponed,
		IsToday:       isToday,
		DateStatus:    state,
		StatusMessage: StatusMessage(state, isToday),
	}
	if isPostponed {
		rec.Remarks = row.PostponementRemarks
	}

	if m.venues != nil && rec.Venue != domain.NotAvailable {
		if v, ok := m.venues.Lookup(rec.Venue); ok {
			c := v.Coordinates()
			rec.VenueLocation = &c
			rec.MapsURL = venue.SearchURL(c)
			rec.DirectionsURL = venue.DirectionsURL(c)
		}
	}

	return rec
}

// firstNonEmpty returns the first value that is not blank, or "N/A".
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return domain.NotAvailable
}
