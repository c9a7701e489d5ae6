package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/domain/providers"
	"github.com/carelink-cm/carelink-backend/internal/domain/repositories"
)

// SearchAnalyticsService records committed searches for later analysis and
// feeds the admin dashboard's live activity panel through the event bus.
type SearchAnalyticsService struct {
	repo repositories.SearchAnalyticsRepository
	bus  providers.EventBus
}

func NewSearchAnalyticsService(repo repositories.SearchAnalyticsRepository, bus providers.EventBus) *SearchAnalyticsService {
	return &SearchAnalyticsService{repo: repo, bus: bus}
}

// TrackSearch persists and publishes the event without blocking the request.
func (s *SearchAnalyticsService) TrackSearch(ctx context.Context, event *entities.SearchEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	go func() {
		// Use a fresh context since the request context might be cancelled
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if s.repo != nil {
			if err := s.repo.LogEvent(bgCtx, event); err != nil {
				log.Printf("Warning: failed to log search event: %v", err)
			}
		}
		if s.bus != nil {
			if err := s.bus.Publish(bgCtx, providers.EventChannelSearchCommitted, event); err != nil {
				log.Printf("Warning: failed to publish search event: %v", err)
			}
		}
	}()
}

func (s *SearchAnalyticsService) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	return s.repo.GetZeroResultQueries(ctx, limit)
}

// GetTopQueries returns the most frequent committed queries, the candidate
// pool for refreshing the curated trending terms.
func (s *SearchAnalyticsService) GetTopQueries(ctx context.Context, limit int) ([]string, error) {
	return s.repo.GetTopQueries(ctx, limit)
}
