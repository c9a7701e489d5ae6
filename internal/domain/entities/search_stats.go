package entities

// Price bucket boundaries in FCFA. Buckets partition [0, inf):
// Economique < 20000 <= Standard < 40000 <= Premium.
const (
	PriceBucketStandardMin = 20000
	PriceBucketPremiumMin  = 40000
)

// SpecialtyCount is one entry of the top-specialty ranking.
type SpecialtyCount struct {
	Specialty string `json:"specialty"`
	Count     int    `json:"count"`
}

// PriceRanges counts doctors per consultation-fee bucket.
type PriceRanges struct {
	Economique int `json:"economique"`
	Standard   int `json:"standard"`
	Premium    int `json:"premium"`
}

// SearchStats is a derived snapshot over a result set. A nil *SearchStats
// means "no stats" (empty result set) and is distinct from a zero-valued one.
type SearchStats struct {
	TotalDoctors      int            `json:"total_doctors"`
	AverageRating     float64        `json:"average_rating"`
	AveragePrice      float64        `json:"average_price"`
	AverageExperience float64        `json:"average_experience"`
	TopSpecialties    []SpecialtyCount `json:"top_specialties"`
	CityCount         map[string]int `json:"city_count"`
	PriceRanges       PriceRanges    `json:"price_ranges"`
	AvailableToday    int            `json:"available_today"`
	AvailabilityRate  float64        `json:"availability_rate"`
}
