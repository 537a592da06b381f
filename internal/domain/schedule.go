// Package domain contains the core data types for the exam schedule tracker.
// This package has zero external dependencies and is imported by every other
// internal package (schedule, service, handler, repo).
package domain

// NotAvailable is the sentinel placed in schedule-derived fields when no
// value is known.
const NotAvailable = "N/A"

// ScheduleRow is one row of the exam schedule spreadsheet.
// All fields are kept as the free-form strings found in the sheet.
type ScheduleRow struct {
	ApplicationID       string `json:"applicationId"`
	Campus              string `json:"campus"`
	Course              string `json:"course"`
	Venue               string `json:"venue"`
	Date                string `json:"date"`                // "Jan 24, 2025", ISO, or "MM/DD/YYYY"
	Time                string `json:"time"`                // "9:00 AM" or "1:30 PM - 4:30 PM"
	PostponementRemarks string `json:"postponementRemarks"` // empty when not postponed
}

// DateStatus is the intermediate classification of a date or clock time
// relative to now. Clock times only ever classify as past or future.
type DateStatus string

const (
	DatePast   DateStatus = "past"
	DateToday  DateStatus = "today"
	DateFuture DateStatus = "future"
)

// ExamState is the user-facing classification of an applicant's exam timing.
type ExamState string

const (
	ExamUpcoming          ExamState = "upcoming"
	ExamPast              ExamState = "past"
	ExamTodayPast         ExamState = "today-past"
	ExamPostponedUpcoming ExamState = "postponed-upcoming"
	ExamPostponedPast     ExamState = "postponed-past"
)
