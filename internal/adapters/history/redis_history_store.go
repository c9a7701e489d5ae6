package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carelink-cm/carelink-backend/internal/domain/providers"
	redisclient "github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/redis"
)

const (
	historyKeyPrefix = "search:history:"
	historyTTL       = 30 * 24 * time.Hour
)

// RedisHistoryStore implements the HistoryStore interface using Redis.
// Each session's history is a JSON array under its own key.
type RedisHistoryStore struct {
	client *redisclient.Client
}

// NewRedisHistoryStore creates a new Redis-backed history store
func NewRedisHistoryStore(client *redisclient.Client) providers.HistoryStore {
	return &RedisHistoryStore{client: client}
}

func historyKey(sessionID string) string {
	return historyKeyPrefix + sessionID
}

// Load reads the stored history; a missing key yields an empty list
func (s *RedisHistoryStore) Load(ctx context.Context, sessionID string) ([]string, error) {
	data, err := s.client.Client().Get(ctx, historyKey(sessionID)).Bytes()
	if err == redis.Nil {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}

	var queries []string
	if err := json.Unmarshal(data, &queries); err != nil {
		// Corrupted entry: treat as absent rather than poisoning every load.
		return []string{}, nil
	}
	return queries, nil
}

// Save replaces the stored history and refreshes its TTL
func (s *RedisHistoryStore) Save(ctx context.Context, sessionID string, queries []string) error {
	data, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("failed to marshal search history: %w", err)
	}
	if err := s.client.Client().Set(ctx, historyKey(sessionID), data, historyTTL).Err(); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

// Clear removes the stored history for a session
func (s *RedisHistoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Client().Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
