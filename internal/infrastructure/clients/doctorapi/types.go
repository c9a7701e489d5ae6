package doctorapi

import (
	"encoding/json"
	"strings"
)

// Specialization accepts the two shapes the backend emits for the
// specialization field: a comma-joined string or a list of strings.
type Specialization struct {
	Raw    string
	List   []string
	IsList bool
}

// UnmarshalJSON implements the union decoding. Unexpected shapes decode to an
// empty value instead of failing the whole record.
func (s *Specialization) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return nil
		}
		s.List = list
		s.IsList = true
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	s.Raw = raw
	return nil
}

// Display returns the comma-joined display form of the specialization.
func (s Specialization) Display() string {
	if s.IsList {
		return strings.Join(s.List, ", ")
	}
	return s.Raw
}

// FlexScalar captures a JSON value that may arrive as a string or a number,
// preserving its textual form for the normalizer to parse.
type FlexScalar string

// UnmarshalJSON accepts strings, numbers and null; anything else decodes empty.
func (f *FlexScalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexScalar(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexScalar(num.String())
		return nil
	}

	*f = ""
	return nil
}

// String returns the captured textual form.
func (f FlexScalar) String() string {
	return string(f)
}

// RawUser is the optional nested account object on a doctor payload.
type RawUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RawDoctor is a doctor record as the backend ships it, before normalization.
type RawDoctor struct {
	ID                int            `json:"id"`
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	Specialization    Specialization `json:"specialization"`
	City              string         `json:"city"`
	Region            string         `json:"region"`
	Latitude          *float64       `json:"latitude"`
	Longitude         *float64       `json:"longitude"`
	ConsultationFee   FlexScalar     `json:"consultation_fee"`
	Rating            float64        `json:"rating"`
	YearsOfExperience FlexScalar     `json:"years_of_experience"`
	Available         bool           `json:"available"`
	AvailableSlots    []string       `json:"available_slots"`
	Phone             string         `json:"phone"`
	User              *RawUser       `json:"user"`
}

// DoctorListResponse is the envelope for list endpoints.
type DoctorListResponse struct {
	Doctors []RawDoctor `json:"doctors"`
	Count   int         `json:"count"`
	Total   int         `json:"total"`
	HasMore bool        `json:"has_more,omitempty"`
}

// SpecializationListResponse is the envelope for the specialization catalog.
type SpecializationListResponse struct {
	Specializations []string `json:"specializations"`
}
