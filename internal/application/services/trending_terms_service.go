package services

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// defaultTrendingTerms are the curated fallback terms shown before any
// editorial configuration is deployed.
var defaultTrendingTerms = []string{"Cardiologie", "Pédiatrie", "Yaoundé"}

// TrendingTermsService serves the curated trending search terms. Terms come
// from a JSON config file (a plain array of strings) and fall back to the
// built-in defaults when no file is configured.
type TrendingTermsService struct {
	terms []string
	mu    sync.RWMutex
}

// NewTrendingTermsService creates the service, loading the config file when a
// path is given.
func NewTrendingTermsService(configPath string) (*TrendingTermsService, error) {
	s := &TrendingTermsService{terms: defaultTrendingTerms}
	if configPath != "" {
		if err := s.loadConfig(configPath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// loadConfig loads the term list from a JSON file
func (s *TrendingTermsService) loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return err
	}

	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		if trimmed := strings.TrimSpace(term); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		cleaned = defaultTrendingTerms
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = cleaned
	return nil
}

// Terms returns a copy of the current trending terms in display order.
func (s *TrendingTermsService) Terms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}
