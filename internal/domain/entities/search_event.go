package entities

import (
	"time"
)

// SearchEvent represents a single committed search for analytics.
type SearchEvent struct {
	ID          string    `json:"id" db:"id"`
	Query       string    `json:"query" db:"query"`
	City        string    `json:"city,omitempty" db:"city"`
	Specialty   string    `json:"specialty,omitempty" db:"specialty"`
	ResultCount int       `json:"result_count" db:"result_count"`
	LatencyMs   int       `json:"latency_ms" db:"latency_ms"`
	SessionID   string    `json:"session_id,omitempty" db:"session_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
