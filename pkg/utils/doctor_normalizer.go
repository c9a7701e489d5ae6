package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/doctorapi"
)

// DefaultExperienceYears is the fallback when years_of_experience is missing
// or unparseable. The value is inherited from the product's first data import
// and is kept stable so downstream sorting stays deterministic.
const DefaultExperienceYears = 5

// UnspecifiedSpecialty is the explicit marker rendered when a doctor record
// carries no usable specialization. Consumers must never see a blank string.
const UnspecifiedSpecialty = "Non spécifié"

// EmailDomain is the synthesized-address domain for records without an account.
const EmailDomain = "hospital.cm"

var defaultLanguages = []string{"Français", "Anglais"}

// NormalizeDoctor maps a raw backend payload to the canonical Doctor entity.
// It is pure and total: unmappable optional fields take documented defaults,
// it never fails.
func NormalizeDoctor(raw doctorapi.RawDoctor) entities.Doctor {
	firstName := strings.TrimSpace(raw.FirstName)
	lastName := strings.TrimSpace(raw.LastName)

	specialty := strings.TrimSpace(raw.Specialization.Display())
	specialties := SplitSpecialties(specialty)
	if len(specialties) == 0 {
		specialty = UnspecifiedSpecialty
		specialties = []string{UnspecifiedSpecialty}
	}

	doctor := entities.Doctor{
		ID:              raw.ID,
		FirstName:       firstName,
		LastName:        lastName,
		Name:            fmt.Sprintf("Dr. %s %s", firstName, lastName),
		Specialty:       specialty,
		Specialties:     specialties,
		City:            strings.TrimSpace(raw.City),
		ConsultationFee: normalizeFee(raw.ConsultationFee.String()),
		Rating:          clampRating(raw.Rating),
		Experience:      normalizeExperience(raw.YearsOfExperience.String()),
		Available:       raw.Available,
		AvailableSlots:  raw.AvailableSlots,
		Email:           normalizeEmail(raw.User, firstName, lastName),
		Phone:           strings.TrimSpace(raw.Phone),
		Languages:       defaultLanguages,
	}

	if doctor.AvailableSlots == nil {
		doctor.AvailableSlots = []string{}
	}

	region := strings.TrimSpace(raw.Region)
	switch {
	case doctor.City != "" && region != "":
		doctor.Location = doctor.City + ", " + region
	case doctor.City != "":
		doctor.Location = doctor.City
	}

	if raw.Latitude != nil && raw.Longitude != nil {
		doctor.Coordinates = &entities.Location{
			Latitude:  *raw.Latitude,
			Longitude: *raw.Longitude,
		}
	}

	return doctor
}

// NormalizeDoctors maps a raw collection, preserving input order.
func NormalizeDoctors(raws []doctorapi.RawDoctor) []entities.Doctor {
	doctors := make([]entities.Doctor, 0, len(raws))
	for _, raw := range raws {
		doctors = append(doctors, NormalizeDoctor(raw))
	}
	return doctors
}

// SplitSpecialties splits a comma-joined display string into trimmed,
// non-empty entries. A blank input yields an empty slice.
func SplitSpecialties(display string) []string {
	if strings.TrimSpace(display) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(display, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeExperience(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultExperienceYears
	}
	years, err := strconv.Atoi(trimmed)
	if err != nil {
		// tolerate "12.0"-style numerics before giving up
		if f, ferr := strconv.ParseFloat(trimmed, 64); ferr == nil {
			years = int(f)
		} else {
			return DefaultExperienceYears
		}
	}
	if years < 0 {
		return 0
	}
	return years
}

func normalizeFee(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	fee, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || fee < 0 {
		return 0
	}
	return fee
}

func clampRating(rating float64) float64 {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func normalizeEmail(user *doctorapi.RawUser, firstName, lastName string) string {
	if user != nil && strings.TrimSpace(user.Email) != "" {
		return strings.TrimSpace(user.Email)
	}
	return SynthesizeEmail(firstName, lastName)
}

// SynthesizeEmail builds the placeholder contact address used when a doctor
// record has no account email.
func SynthesizeEmail(firstName, lastName string) string {
	local := fmt.Sprintf("%s.%s", firstName, lastName)
	local = strings.ReplaceAll(local, " ", "")
	return strings.ToLower(local) + "@" + EmailDomain
}
