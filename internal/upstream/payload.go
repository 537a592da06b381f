package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// flexibleID accepts an identifier sent either as a JSON number or a string
// and keeps its decimal string form.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// Present reports whether the ID names a real record; the API answers
// unknown IDs with id 0.
func (f flexibleID) Present() bool {
	return f != "" && f != "0"
}

// applicationPayload is the subset of the tracking response this service
// reads. Unknown fields are ignored.
type applicationPayload struct {
	ID         flexibleID `json:"id"`
	FirstName  string     `json:"first_name"`
	MiddleName string     `json:"middle_name"`
	LastName   string     `json:"last_name"`
	CourseCode string     `json:"coursecode"`
	ExamVenue  string     `json:"exam_venue"`
	Campus     string     `json:"campus"`
	Email      string     `json:"email"`
}

func (p applicationPayload) toDomain() domain.Application {
	return domain.Application{
		ID:         string(p.ID),
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		LastName:   p.LastName,
		CourseCode: p.CourseCode,
		ExamVenue:  p.ExamVenue,
		Campus:     p.Campus,
		Email:      p.Email,
	}
}

type rejectionPayload struct {
	ID            flexibleID `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	CourseCode    string     `json:"coursecode"`
	Status        string     `json:"status"`
	StatusRemarks string     `json:"status_remarks"`
	Remarks       string     `json:"remarks"`
}

func (p rejectionPayload) toDomain() domain.Rejection {
	return domain.Rejection{
		ID:            string(p.ID),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		CourseCode:    p.CourseCode,
		Status:        p.Status,
		StatusRemarks: p.StatusRemarks,
		Remarks:       p.Remarks,
	}
}
