package providers

import (
	"context"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to search events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.SearchEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelSearchCommitted carries every committed search, feeding the
	// admin dashboard's live activity panel
	EventChannelSearchCommitted = "search:committed"

	// EventChannelCityPrefix is the prefix for per-city search channels
	EventChannelCityPrefix = "search:city:"
)

// GetCityChannel returns the channel name for searches scoped to a city
func GetCityChannel(city string) string {
	return EventChannelCityPrefix + city
}
