package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/doctorapi"
)

func rawDoctor() doctorapi.RawDoctor {
	return doctorapi.RawDoctor{
		ID:                7,
		FirstName:         "Jean",
		LastName:          "Mballa",
		Specialization:    doctorapi.Specialization{Raw: "Cardiologie, Médecine interne"},
		City:              "Yaoundé",
		Region:            "Centre",
		ConsultationFee:   "25000",
		Rating:            4.5,
		YearsOfExperience: "12",
		Available:         true,
		AvailableSlots:    []string{"09:00", "10:30"},
		User:              &doctorapi.RawUser{Email: "jean.mballa@hospital.cm"},
	}
}

func TestNormalizeDoctor_CanonicalFields(t *testing.T) {
	doc := NormalizeDoctor(rawDoctor())

	assert.Equal(t, 7, doc.ID)
	assert.Equal(t, "Dr. Jean Mballa", doc.Name)
	assert.Equal(t, "Cardiologie, Médecine interne", doc.Specialty)
	assert.Equal(t, []string{"Cardiologie", "Médecine interne"}, doc.Specialties)
	assert.Equal(t, "Yaoundé, Centre", doc.Location)
	assert.Equal(t, 25000.0, doc.ConsultationFee)
	assert.Equal(t, 12, doc.Experience)
	assert.Equal(t, "jean.mballa@hospital.cm", doc.Email)
}

func TestNormalizeDoctor_SpecializationList(t *testing.T) {
	raw := rawDoctor()
	raw.Specialization = doctorapi.Specialization{List: []string{"Pédiatrie", "Néonatologie"}, IsList: true}

	doc := NormalizeDoctor(raw)
	assert.Equal(t, "Pédiatrie, Néonatologie", doc.Specialty)
	assert.Equal(t, []string{"Pédiatrie", "Néonatologie"}, doc.Specialties)
}

func TestNormalizeDoctor_BlankSpecializationGetsMarker(t *testing.T) {
	raw := rawDoctor()
	raw.Specialization = doctorapi.Specialization{Raw: "  , , "}

	doc := NormalizeDoctor(raw)
	assert.Equal(t, UnspecifiedSpecialty, doc.Specialty)
	assert.Equal(t, []string{UnspecifiedSpecialty}, doc.Specialties)
}

func TestNormalizeDoctor_ExperienceFallback(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want int
	}{
		"missing":      {"", DefaultExperienceYears},
		"garbage":      {"beaucoup", DefaultExperienceYears},
		"plain":        {"9", 9},
		"float-ish":    {"12.0", 12},
		"negative":     {"-3", 0},
		"padded":       {" 4 ", 4},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			raw := rawDoctor()
			raw.YearsOfExperience = doctorapi.FlexScalar(tc.raw)
			assert.Equal(t, tc.want, NormalizeDoctor(raw).Experience)
		})
	}
}

func TestNormalizeDoctor_FeeDefaultsToZero(t *testing.T) {
	raw := rawDoctor()
	raw.ConsultationFee = ""
	assert.Equal(t, 0.0, NormalizeDoctor(raw).ConsultationFee)

	raw.ConsultationFee = "-500"
	assert.Equal(t, 0.0, NormalizeDoctor(raw).ConsultationFee)
}

func TestNormalizeDoctor_EmailSynthesis(t *testing.T) {
	raw := rawDoctor()
	raw.User = nil
	assert.Equal(t, "jean.mballa@hospital.cm", NormalizeDoctor(raw).Email)

	raw.FirstName = "Marie Claire"
	raw.LastName = "Ngo Bassa"
	assert.Equal(t, "marieclaire.ngobassa@hospital.cm", NormalizeDoctor(raw).Email)
}

func TestNormalizeDoctor_RatingClamped(t *testing.T) {
	raw := rawDoctor()
	raw.Rating = 7.2
	assert.Equal(t, 5.0, NormalizeDoctor(raw).Rating)

	raw.Rating = -1
	assert.Equal(t, 0.0, NormalizeDoctor(raw).Rating)
}

// Normalizing a record rebuilt from canonical output must be a fixed point.
func TestNormalizeDoctor_Idempotent(t *testing.T) {
	first := NormalizeDoctor(rawDoctor())

	rebuilt := doctorapi.RawDoctor{
		ID:                first.ID,
		FirstName:         first.FirstName,
		LastName:          first.LastName,
		Specialization:    doctorapi.Specialization{Raw: first.Specialty},
		City:              "Yaoundé",
		Region:            "Centre",
		ConsultationFee:   doctorapi.FlexScalar("25000"),
		Rating:            first.Rating,
		YearsOfExperience: doctorapi.FlexScalar("12"),
		Available:         first.Available,
		AvailableSlots:    first.AvailableSlots,
		User:              &doctorapi.RawUser{Email: first.Email},
	}
	second := NormalizeDoctor(rebuilt)
	require.Equal(t, first, second)
}

func TestNormalizeDoctors_PreservesOrder(t *testing.T) {
	a := rawDoctor()
	b := rawDoctor()
	b.ID = 8
	docs := NormalizeDoctors([]doctorapi.RawDoctor{a, b})
	require.Len(t, docs, 2)
	assert.Equal(t, 7, docs[0].ID)
	assert.Equal(t, 8, docs[1].ID)
}
