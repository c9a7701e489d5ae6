package entities

// SuggestionType tags a search suggestion with its provenance.
type SuggestionType string

const (
	SuggestionTypeDoctor    SuggestionType = "doctor"
	SuggestionTypeSpecialty SuggestionType = "specialty"
	SuggestionTypeCity      SuggestionType = "city"
	SuggestionTypeRecent    SuggestionType = "recent"
	SuggestionTypeTrending  SuggestionType = "trending"
)

// SearchSuggestion is one typeahead candidate shown while composing a query.
// Value is the text inserted into the search box on selection; Label is the
// display text. Doctor is set only for doctor-typed suggestions and is a
// lookup reference, not ownership.
type SearchSuggestion struct {
	Type   SuggestionType `json:"type"`
	Value  string         `json:"value"`
	Label  string         `json:"label"`
	Doctor *Doctor        `json:"doctor,omitempty"`
}
