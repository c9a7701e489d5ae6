package history

import (
	"context"
	"sync"

	"github.com/carelink-cm/carelink-backend/internal/domain/providers"
)

// MemoryHistoryStore keeps per-session history in process memory. Used when
// Redis is not configured; history then lives only for the server's lifetime.
type MemoryHistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]string
}

// NewMemoryHistoryStore creates an in-memory history store
func NewMemoryHistoryStore() providers.HistoryStore {
	return &MemoryHistoryStore{sessions: make(map[string][]string)}
}

// Load reads the stored history; an unknown session yields an empty list
func (s *MemoryHistoryStore) Load(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.sessions[sessionID]
	queries := make([]string, len(stored))
	copy(queries, stored)
	return queries, nil
}

// Save replaces the stored history for a session
func (s *MemoryHistoryStore) Save(ctx context.Context, sessionID string, queries []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]string, len(queries))
	copy(stored, queries)
	s.sessions[sessionID] = stored
	return nil
}

// Clear removes the stored history for a session
func (s *MemoryHistoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
