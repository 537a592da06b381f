// Package sheet parses the CSV export of the exam schedule spreadsheet.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// ErrMalformed is returned when an export is empty or lacks a required column.
var ErrMalformed = errors.New("malformed schedule export")

// FallbackRemarksColumn is the zero-based column (H) read for postponement
// remarks when no header mentions a postponement or remarks.
const FallbackRemarksColumn = 7

// Header fragments, matched case-insensitively against trimmed header text.
const (
	headerApplicationID = "application id"
	headerCampus        = "campus applied"
	headerCourse        = "course"
	headerVenue         = "exam venue"
	headerDate          = "date"
	headerTime          = "time"
	headerPostponed     = "postpone"
	headerRemarks       = "remarks"
)

// columns holds the resolved zero-based index of every field; -1 means absent.
type columns struct {
	id, campus, course, venue, date, clock, remarks int
}

// Parse reads a schedule export. The first record is the header row; column
// identity is decided by header text, not position, except for the remarks
// column which falls back to FallbackRemarksColumn. Records too short to hold
// every resolved column, and records without an application ID, are skipped.
func Parse(r io.Reader) ([]domain.ScheduleRow, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("sheet.Parse: %w: empty export", ErrMalformed)
		}
		return nil, fmt.Errorf("sheet.Parse: header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, fmt.Errorf("sheet.Parse: %w", err)
	}
	minLen := cols.minRecordLen()

	var rows []domain.ScheduleRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sheet.Parse: record: %w", err)
		}
		if len(rec) < minLen {
			continue
		}

		row := domain.ScheduleRow{
			ApplicationID:       cell(rec, cols.id),
			Campus:              cell(rec, cols.campus),
			Course:              cell(rec, cols.course),
			Venue:               cell(rec, cols.venue),
			Date:                cell(rec, cols.date),
			Time:                cell(rec, cols.clock),
			PostponementRemarks: cell(rec, cols.remarks),
		}
		if row.ApplicationID == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// resolveColumns maps header text to column indexes. The application ID,
// date and time columns are required.
func resolveColumns(header []string) (columns, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	find := func(fragment string) int {
		for i, h := range normalized {
			if strings.Contains(h, fragment) {
				return i
			}
		}
		return -1
	}

	cols := columns{
		id:      find(headerApplicationID),
		campus:  find(headerCampus),
		course:  find(headerCourse),
		venue:   find(headerVenue),
		date:    find(headerDate),
		clock:   find(headerTime),
		remarks: find(headerPostponed),
	}
	if cols.remarks < 0 {
		cols.remarks = find(headerRemarks)
	}
	if cols.remarks < 0 {
		cols.remarks = FallbackRemarksColumn
	}

	var missing []string
	if cols.id < 0 {
		missing = append(missing, headerApplicationID)
	}
	if cols.date < 0 {
		missing = append(missing, headerDate)
	}
	if cols.clock < 0 {
		missing = append(missing, headerTime)
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: missing columns: %s", ErrMalformed, strings.Join(missing, ", "))
	}
	return cols, nil
}

// minRecordLen is one past the highest resolved column. The remarks column is
// left out: a short record simply has no remarks.
func (c columns) minRecordLen() int {
	highest := -1
	for _, i := range []int{c.id, c.campus, c.course, c.venue, c.date, c.clock} {
		if i > highest {
			highest = i
		}
	}
	return highest + 1
}

// cell returns the trimmed value at index i with surrounding quote characters
// stripped, or "" when i is absent or out of range.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.Trim(strings.TrimSpace(rec[i]), `'"`)
}
