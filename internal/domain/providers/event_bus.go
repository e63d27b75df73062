package providers

import (
	"context"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// entity mutation events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.EntityEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.EntityEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for entity mutation events
const (
	// EventChannelEntityUpdates is the channel carrying every entity mutation
	EventChannelEntityUpdates = "entity:updates"

	// EventChannelEntityPrefix is the prefix for per-entity-type channels
	EventChannelEntityPrefix = "entity:"
)

// GetEntityChannel returns the channel name for a specific entity type
func GetEntityChannel(entityType entities.EntityType) string {
	return EventChannelEntityPrefix + string(entityType)
}
