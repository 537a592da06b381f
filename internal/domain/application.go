package domain

// Application is an accepted application as returned by the admissions API.
// Only the fields below are carried; anything else upstream sends is dropped.
type Application struct {
	ID         string
	FirstName  string
	MiddleName string
	LastName   string
	CourseCode string
	ExamVenue  string
	Campus     string
	Email      string
}

// Rejection is a rejected application with the admissions office remarks.
type Rejection struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	CourseCode    string `json:"coursecode"`
	Status        string `json:"status"`
	StatusRemarks string `json:"status_remarks"`
	Remarks       string `json:"remarks"`
}

// ProcessedRecord is an Application merged with its schedule row.
// It is built fresh for every lookup and never persisted.
type ProcessedRecord struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	CourseCode string `json:"coursecode,omitempty"`
	ExamVenue  string `json:"exam_venue"`
	Campus     string `json:"campus"`
	Email      string `json:"email,omitempty"`

	Date    string `json:"date"`
	Time    string `json:"time"`
	Course  string `json:"course"`
	Venue   string `json:"venue"`
	Remarks string `json:"remarks"`

	IsPostponed   bool      `json:"isPostponed"`
	PostponedDate string    `json:"postponedDate,omitempty"`
	IsToday       bool      `json:"isToday"`
	DateStatus    ExamState `json:"dateStatus"`
	StatusMessage string    `json:"statusMessage"`

	VenueLocation *Coordinates `json:"venue_location,omitempty"` // nil when the venue is unknown
	MapsURL       string       `json:"mapsUrl,omitempty"`
	DirectionsURL string       `json:"directionsUrl,omitempty"`
}

// LookupKind tells which card a lookup resolved to.
type LookupKind string

const (
	LookupAccepted LookupKind = "accepted"
	LookupRejected LookupKind = "rejected"
)

// LookupResult is the outcome of a successful lookup. Exactly one of
// Application and Rejection is set, matching Kind.
type LookupResult struct {
	Kind        LookupKind
	Application *ProcessedRecord
	Rejection   *Rejection
}
