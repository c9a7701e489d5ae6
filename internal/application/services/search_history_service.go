package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/carelink-cm/carelink-backend/internal/domain/providers"
)

// DefaultHistoryLimit bounds the recent-search history.
const DefaultHistoryLimit = 5

// SearchHistoryService owns the recent-search history lifecycle: bounded,
// deduplicated, most-recent-first, persisted on every mutation. Storage
// failures degrade to "no history" and never break the search flow.
type SearchHistoryService struct {
	store providers.HistoryStore
	limit int
}

// NewSearchHistoryService creates a new history service
func NewSearchHistoryService(store providers.HistoryStore, limit int) *SearchHistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &SearchHistoryService{store: store, limit: limit}
}

// Load reads the persisted history for a session.
func (s *SearchHistoryService) Load(ctx context.Context, sessionID string) []string {
	if s.store == nil {
		return []string{}
	}
	history, err := s.store.Load(ctx, sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("search history unavailable, treating as empty")
		return []string{}
	}
	if len(history) > s.limit {
		history = history[:s.limit]
	}
	return history
}

// Commit inserts a query at the front of the history. A query already present
// moves to the front instead of duplicating; the list is capped and persisted.
// Blank queries leave the history untouched. Returns the updated history.
func (s *SearchHistoryService) Commit(ctx context.Context, sessionID, query string) []string {
	trimmed := strings.TrimSpace(query)
	current := s.Load(ctx, sessionID)
	if trimmed == "" {
		return current
	}

	updated := make([]string, 0, s.limit)
	updated = append(updated, trimmed)
	for _, q := range current {
		if strings.EqualFold(q, trimmed) {
			continue
		}
		updated = append(updated, q)
		if len(updated) == s.limit {
			break
		}
	}

	if s.store != nil {
		if err := s.store.Save(ctx, sessionID, updated); err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist search history")
		}
	}
	return updated
}

// Clear wipes the history and its durable storage.
func (s *SearchHistoryService) Clear(ctx context.Context, sessionID string) {
	if s.store == nil {
		return
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to clear search history")
	}
}
