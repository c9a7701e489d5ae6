package entities

// Doctor represents a practitioner after normalization. Instances are treated
// as immutable for the lifetime of a fetch cycle.
type Doctor struct {
	ID          int      `json:"id" db:"id"`
	FirstName   string   `json:"first_name" db:"first_name"`
	LastName    string   `json:"last_name" db:"last_name"`
	Name        string   `json:"name" db:"-"`
	Specialty   string   `json:"specialty" db:"specialty"`
	Specialties []string `json:"specialties" db:"-"`

	City        string    `json:"city,omitempty" db:"city"`
	Location    string    `json:"location,omitempty" db:"location"`
	Coordinates *Location `json:"coordinates,omitempty" db:"-"`

	ConsultationFee float64 `json:"consultation_fee" db:"consultation_fee"`
	Rating          float64 `json:"rating" db:"rating"`
	Experience      int     `json:"experience" db:"experience"`

	Available      bool     `json:"available" db:"available"`
	AvailableSlots []string `json:"available_slots" db:"-"`

	Email string `json:"email,omitempty" db:"email"`
	Phone string `json:"phone,omitempty" db:"phone"`

	// Presentation defaults with no real data source behind them.
	PhotoURL  string   `json:"photo_url,omitempty" db:"-"`
	Languages []string `json:"languages,omitempty" db:"-"`
	Education string   `json:"education,omitempty" db:"education"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AvailableToday reports whether the doctor has at least one open slot.
func (d *Doctor) AvailableToday() bool {
	return len(d.AvailableSlots) > 0
}

// Availability window values accepted by SearchFilters.
const (
	AvailabilityToday = "today"
	AvailabilityWeek  = "week"
	AvailabilityMonth = "month"
)

// SearchFilters is a set of independent narrowing predicates combined with
// logical AND. Zero values impose no constraint.
type SearchFilters struct {
	City         string   `json:"city,omitempty"`
	Specialty    string   `json:"specialty,omitempty"`
	Query        string   `json:"query,omitempty"`
	Available    *bool    `json:"available,omitempty"`
	MinRating    *float64 `json:"min_rating,omitempty"`
	MaxFee       *float64 `json:"max_fee,omitempty"`
	Availability string   `json:"availability,omitempty"`

	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f SearchFilters) IsEmpty() bool {
	return f.City == "" && f.Specialty == "" && f.Query == "" &&
		f.Available == nil && f.MinRating == nil && f.MaxFee == nil &&
		f.Availability == ""
}
