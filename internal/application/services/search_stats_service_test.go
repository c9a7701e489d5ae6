package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

func TestAggregate_EmptyInputIsNil(t *testing.T) {
	svc := NewSearchStatsService()
	assert.Nil(t, svc.Aggregate(nil))
	assert.Nil(t, svc.Aggregate([]entities.Doctor{}))
}

func TestAggregate_SingleDoctor(t *testing.T) {
	svc := NewSearchStatsService()
	doc := entities.Doctor{ID: 1, Specialty: "Cardiologie", Rating: 4.2, ConsultationFee: 10000}

	stats := svc.Aggregate([]entities.Doctor{doc})

	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TotalDoctors)
	assert.Equal(t, 4.2, stats.AverageRating)
}

func TestAggregate_TwoDoctorScenario(t *testing.T) {
	svc := NewSearchStatsService()
	doctors := []entities.Doctor{
		{ID: 1, Specialty: "Cardiologie", City: "Yaoundé", Rating: 4.0, ConsultationFee: 15000, AvailableSlots: []string{"09:00"}},
		{ID: 2, Specialty: "Pédiatrie", City: "Douala", Rating: 5.0, ConsultationFee: 45000, AvailableSlots: []string{"10:00"}},
	}

	stats := svc.Aggregate(doctors)

	require.NotNil(t, stats)
	assert.Equal(t, 30000.0, stats.AveragePrice)
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.Equal(t, 2, stats.AvailableToday)
	assert.Equal(t, 100.0, stats.AvailabilityRate)
	assert.Equal(t, entities.PriceRanges{Economique: 1, Standard: 0, Premium: 1}, stats.PriceRanges)
	assert.Equal(t, map[string]int{"Yaoundé": 1, "Douala": 1}, stats.CityCount)
}

// The three buckets partition [0, inf): boundaries land in the upper bucket.
func TestAggregate_PriceBucketBoundaries(t *testing.T) {
	svc := NewSearchStatsService()
	doctors := []entities.Doctor{
		{ID: 1, ConsultationFee: 0},
		{ID: 2, ConsultationFee: 19999},
		{ID: 3, ConsultationFee: 20000},
		{ID: 4, ConsultationFee: 39999},
		{ID: 5, ConsultationFee: 40000},
		{ID: 6, ConsultationFee: 120000},
	}

	stats := svc.Aggregate(doctors)

	require.NotNil(t, stats)
	assert.Equal(t, entities.PriceRanges{Economique: 2, Standard: 2, Premium: 2}, stats.PriceRanges)
	total := stats.PriceRanges.Economique + stats.PriceRanges.Standard + stats.PriceRanges.Premium
	assert.Equal(t, stats.TotalDoctors, total)
}

func TestAggregate_TopSpecialtiesFirstEncounterTieBreak(t *testing.T) {
	svc := NewSearchStatsService()
	doctors := []entities.Doctor{
		{ID: 1, Specialty: "Dermatologie"},
		{ID: 2, Specialty: "Cardiologie"},
		{ID: 3, Specialty: "Cardiologie"},
		{ID: 4, Specialty: "Pédiatrie"},
		{ID: 5, Specialty: "Gynécologie"},
	}

	stats := svc.Aggregate(doctors)

	require.NotNil(t, stats)
	require.Len(t, stats.TopSpecialties, 3)
	assert.Equal(t, entities.SpecialtyCount{Specialty: "Cardiologie", Count: 2}, stats.TopSpecialties[0])
	// Dermatologie, Pédiatrie and Gynécologie all count 1; first encountered wins.
	assert.Equal(t, "Dermatologie", stats.TopSpecialties[1].Specialty)
	assert.Equal(t, "Pédiatrie", stats.TopSpecialties[2].Specialty)
}

func TestAggregate_AverageExperience(t *testing.T) {
	svc := NewSearchStatsService()
	doctors := []entities.Doctor{
		{ID: 1, Experience: 10},
		{ID: 2, Experience: 2},
	}
	stats := svc.Aggregate(doctors)
	require.NotNil(t, stats)
	assert.Equal(t, 6.0, stats.AverageExperience)
}
