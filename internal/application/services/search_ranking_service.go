package services

import (
	"sort"
	"strings"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

// Sort keys accepted by Rank.
const (
	SortByRating     = "rating"
	SortByExperience = "experience"
	SortByFee        = "fee"
	SortByName       = "name"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// SearchRankingService orders a filtered doctor set. The default comparator
// is rating descending with experience descending as tie-break; doctors equal
// on both keys keep their relative input order. Stability is a contract the
// UI's snapshot rendering depends on, not an implementation detail.
type SearchRankingService struct{}

// NewSearchRankingService creates a new ranking service
func NewSearchRankingService() *SearchRankingService {
	return &SearchRankingService{}
}

// Rank returns a new ordered slice; the input is left untouched.
func (s *SearchRankingService) Rank(doctors []entities.Doctor, sortBy, sortOrder string) []entities.Doctor {
	ranked := make([]entities.Doctor, len(doctors))
	copy(ranked, doctors)

	if sortBy == "" {
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Rating != ranked[j].Rating {
				return ranked[i].Rating > ranked[j].Rating
			}
			return ranked[i].Experience > ranked[j].Experience
		})
		return ranked
	}

	ascending := sortOrder == SortOrderAsc || (sortOrder == "" && sortBy == SortByName)

	sort.SliceStable(ranked, func(i, j int) bool {
		cmp := compareBy(ranked[i], ranked[j], sortBy)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return ranked
}

func compareBy(a, b entities.Doctor, key string) int {
	switch key {
	case SortByExperience:
		return a.Experience - b.Experience
	case SortByFee:
		return compareFloats(a.ConsultationFee, b.ConsultationFee)
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	default:
		return compareFloats(a.Rating, b.Rating)
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
