package providers

import (
	"context"
)

// HistoryStore is the durable storage port for the recent-search history.
// Implementations persist a bounded, most-recent-first list of query strings
// keyed by session. The application layer owns dedup and cap rules; stores
// only read and write the list as-is.
type HistoryStore interface {
	// Load reads the stored history; a missing key yields an empty list
	Load(ctx context.Context, sessionID string) ([]string, error)

	// Save writes the full history, replacing the previous value
	Save(ctx context.Context, sessionID string, history []string) error

	// Clear deletes the stored history
	Clear(ctx context.Context, sessionID string) error
}
