package services

import (
	"sort"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

// topSpecialtyCount is how many specialty groupings the stats panel shows.
const topSpecialtyCount = 3

// SearchStatsService computes the derived statistics snapshot over a result
// set. The snapshot is recomputed on demand and never cached.
type SearchStatsService struct{}

// NewSearchStatsService creates a new stats service
func NewSearchStatsService() *SearchStatsService {
	return &SearchStatsService{}
}

// Aggregate returns nil for an empty input set. Callers must treat "no stats"
// and "zero-valued stats" as distinct states.
func (s *SearchStatsService) Aggregate(doctors []entities.Doctor) *entities.SearchStats {
	if len(doctors) == 0 {
		return nil
	}

	stats := &entities.SearchStats{
		TotalDoctors: len(doctors),
		CityCount:    make(map[string]int),
	}

	var ratingSum, feeSum float64
	var experienceSum int

	specialtyCounts := make(map[string]int)
	specialtyOrder := make([]string, 0)

	for _, doc := range doctors {
		ratingSum += doc.Rating
		feeSum += doc.ConsultationFee
		experienceSum += doc.Experience

		if _, seen := specialtyCounts[doc.Specialty]; !seen {
			specialtyOrder = append(specialtyOrder, doc.Specialty)
		}
		specialtyCounts[doc.Specialty]++

		if doc.City != "" {
			stats.CityCount[doc.City]++
		}

		switch {
		case doc.ConsultationFee < entities.PriceBucketStandardMin:
			stats.PriceRanges.Economique++
		case doc.ConsultationFee < entities.PriceBucketPremiumMin:
			stats.PriceRanges.Standard++
		default:
			stats.PriceRanges.Premium++
		}

		if doc.AvailableToday() {
			stats.AvailableToday++
		}
	}

	total := float64(len(doctors))
	stats.AverageRating = ratingSum / total
	stats.AveragePrice = feeSum / total
	stats.AverageExperience = float64(experienceSum) / total
	stats.AvailabilityRate = float64(stats.AvailableToday) / total * 100

	// Frequency ties break by first appearance in the input, which SliceStable
	// preserves since specialtyOrder is built in input order.
	sort.SliceStable(specialtyOrder, func(i, j int) bool {
		return specialtyCounts[specialtyOrder[i]] > specialtyCounts[specialtyOrder[j]]
	})
	limit := topSpecialtyCount
	if len(specialtyOrder) < limit {
		limit = len(specialtyOrder)
	}
	stats.TopSpecialties = make([]entities.SpecialtyCount, 0, limit)
	for _, specialty := range specialtyOrder[:limit] {
		stats.TopSpecialties = append(stats.TopSpecialties, entities.SpecialtyCount{
			Specialty: specialty,
			Count:     specialtyCounts[specialty],
		})
	}

	return stats
}
