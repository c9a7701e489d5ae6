package services

import (
	"strings"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

// DoctorFilterService applies a SearchFilters predicate set to a doctor
// collection. All predicates are ANDed; an empty filter set is the identity.
type DoctorFilterService struct{}

// NewDoctorFilterService creates a new filter service
func NewDoctorFilterService() *DoctorFilterService {
	return &DoctorFilterService{}
}

// Filter returns the doctors matching every supplied predicate, preserving
// input order. It never fails on well-typed input.
func (s *DoctorFilterService) Filter(doctors []entities.Doctor, filters entities.SearchFilters) []entities.Doctor {
	if filters.IsEmpty() {
		return doctors
	}

	out := make([]entities.Doctor, 0, len(doctors))
	for _, doc := range doctors {
		if s.matches(doc, filters) {
			out = append(out, doc)
		}
	}
	return out
}

func (s *DoctorFilterService) matches(doc entities.Doctor, f entities.SearchFilters) bool {
	// City is a case-insensitive substring match, the forgiving reading used
	// at every call site.
	if f.City != "" && !strings.Contains(strings.ToLower(doc.City), strings.ToLower(f.City)) {
		return false
	}

	if f.Specialty != "" && !matchesSpecialty(doc, f.Specialty) {
		return false
	}

	if f.Query != "" {
		haystack := strings.ToLower(doc.FirstName + " " + doc.LastName + " " + doc.Email)
		if !strings.Contains(haystack, strings.ToLower(f.Query)) {
			return false
		}
	}

	if f.MinRating != nil && doc.Rating < *f.MinRating {
		return false
	}

	if f.MaxFee != nil && doc.ConsultationFee > *f.MaxFee {
		return false
	}

	if f.Available != nil && doc.Available != *f.Available {
		return false
	}

	if f.Availability != "" && !matchesAvailability(doc, f.Availability) {
		return false
	}

	return true
}

// matchesSpecialty matches against each individual specialty entry, so a
// multi-specialty doctor matches on any one of them.
func matchesSpecialty(doc entities.Doctor, wanted string) bool {
	needle := strings.ToLower(wanted)
	for _, specialty := range doc.Specialties {
		if strings.Contains(strings.ToLower(specialty), needle) {
			return true
		}
	}
	return false
}

// matchesAvailability interprets the window: slot labels only model the
// current day, so "today" requires an open slot while the wider windows only
// require the doctor to be bookable. Unrecognized windows impose no constraint.
func matchesAvailability(doc entities.Doctor, window string) bool {
	switch window {
	case entities.AvailabilityToday:
		return doc.AvailableToday()
	case entities.AvailabilityWeek, entities.AvailabilityMonth:
		return doc.Available
	default:
		return true
	}
}
