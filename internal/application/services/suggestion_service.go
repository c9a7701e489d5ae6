package services

import (
	"strings"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

const (
	// maxSuggestions caps the combined suggestion list.
	maxSuggestions = 8

	// maxPerCategory caps doctor, specialty and city matches individually.
	maxPerCategory = 3

	// maxRecentShown caps the recent-search entries on an empty query.
	maxRecentShown = 3
)

// SuggestionService produces the typeahead suggestion list. It is pure given
// its inputs; committing a query to the recent-search history is owned by the
// caller, never by this service.
type SuggestionService struct {
	trending *TrendingTermsService
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(trending *TrendingTermsService) *SuggestionService {
	return &SuggestionService{trending: trending}
}

// Suggest returns ranked suggestions for a partial query. A blank query yields
// recent searches followed by the curated trending terms; a non-blank query
// yields doctor, then specialty, then city matches, at most 8 entries total.
// No match anywhere yields an empty list.
func (s *SuggestionService) Suggest(query string, doctors []entities.Doctor, recent []string) []entities.SearchSuggestion {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.defaultSuggestions(recent)
	}

	needle := strings.ToLower(trimmed)
	suggestions := make([]entities.SearchSuggestion, 0, maxSuggestions)
	suggestions = append(suggestions, doctorMatches(doctors, needle)...)
	suggestions = append(suggestions, specialtyMatches(doctors, needle)...)
	suggestions = append(suggestions, cityMatches(doctors, needle)...)

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func (s *SuggestionService) defaultSuggestions(recent []string) []entities.SearchSuggestion {
	suggestions := make([]entities.SearchSuggestion, 0, maxRecentShown+len(s.trending.Terms()))

	shown := len(recent)
	if shown > maxRecentShown {
		shown = maxRecentShown
	}
	for _, q := range recent[:shown] {
		suggestions = append(suggestions, entities.SearchSuggestion{
			Type:  entities.SuggestionTypeRecent,
			Value: q,
			Label: q,
		})
	}

	for _, term := range s.trending.Terms() {
		suggestions = append(suggestions, entities.SearchSuggestion{
			Type:  entities.SuggestionTypeTrending,
			Value: term,
			Label: term,
		})
	}
	return suggestions
}

func doctorMatches(doctors []entities.Doctor, needle string) []entities.SearchSuggestion {
	matches := make([]entities.SearchSuggestion, 0, maxPerCategory)
	for i := range doctors {
		doc := &doctors[i]
		fullName := strings.ToLower(doc.FirstName + " " + doc.LastName)
		if !strings.Contains(strings.ToLower(doc.Name), needle) && !strings.Contains(fullName, needle) {
			continue
		}
		label := doc.Name
		if doc.Specialty != "" {
			label = doc.Name + " (" + doc.Specialty + ")"
		}
		matches = append(matches, entities.SearchSuggestion{
			Type:   entities.SuggestionTypeDoctor,
			Value:  doc.Name,
			Label:  label,
			Doctor: doc,
		})
		if len(matches) == maxPerCategory {
			break
		}
	}
	return matches
}

func specialtyMatches(doctors []entities.Doctor, needle string) []entities.SearchSuggestion {
	matches := make([]entities.SearchSuggestion, 0, maxPerCategory)
	seen := make(map[string]bool)
	for _, doc := range doctors {
		for _, specialty := range doc.Specialties {
			key := strings.ToLower(specialty)
			if seen[key] || !strings.Contains(key, needle) {
				continue
			}
			seen[key] = true
			matches = append(matches, entities.SearchSuggestion{
				Type:  entities.SuggestionTypeSpecialty,
				Value: specialty,
				Label: specialty,
			})
			if len(matches) == maxPerCategory {
				return matches
			}
		}
	}
	return matches
}

func cityMatches(doctors []entities.Doctor, needle string) []entities.SearchSuggestion {
	matches := make([]entities.SearchSuggestion, 0, maxPerCategory)
	seen := make(map[string]bool)
	for _, doc := range doctors {
		city := displayCity(doc)
		if city == "" {
			continue
		}
		key := strings.ToLower(city)
		if seen[key] || !strings.Contains(key, needle) {
			continue
		}
		seen[key] = true
		matches = append(matches, entities.SearchSuggestion{
			Type:  entities.SuggestionTypeCity,
			Value: city,
			Label: city,
		})
		if len(matches) == maxPerCategory {
			break
		}
	}
	return matches
}

// displayCity prefers the first comma segment of the location display string
// over the raw city field.
func displayCity(doc entities.Doctor) string {
	if doc.Location != "" {
		return strings.TrimSpace(strings.SplitN(doc.Location, ",", 2)[0])
	}
	return strings.TrimSpace(doc.City)
}

// SelectionCursor tracks the keyboard selection over a rendered suggestion
// list. Index -1 means "no selection": the raw query box value is
// authoritative.
type SelectionCursor struct {
	suggestions []entities.SearchSuggestion
	index       int
}

// NewSelectionCursor creates a cursor over the given suggestion list.
func NewSelectionCursor(suggestions []entities.SearchSuggestion) *SelectionCursor {
	return &SelectionCursor{suggestions: suggestions, index: -1}
}

// Index returns the current cursor position.
func (c *SelectionCursor) Index() int {
	return c.index
}

// Down moves the cursor one row down, clamped to the last entry.
func (c *SelectionCursor) Down() int {
	if c.index < len(c.suggestions)-1 {
		c.index++
	}
	return c.index
}

// Up moves the cursor one row up, clamped to -1.
func (c *SelectionCursor) Up() int {
	if c.index > -1 {
		c.index--
	}
	return c.index
}

// Escape resets the selection without committing anything.
func (c *SelectionCursor) Escape() {
	c.index = -1
}

// Commit resolves the committed value: the selected suggestion when the
// cursor is within bounds, else the raw typed query. The doctor entity is
// returned only for doctor-typed selections.
func (c *SelectionCursor) Commit(rawQuery string) (string, *entities.Doctor) {
	if c.index < 0 || c.index >= len(c.suggestions) {
		return rawQuery, nil
	}
	selected := c.suggestions[c.index]
	return selected.Value, selected.Doctor
}
