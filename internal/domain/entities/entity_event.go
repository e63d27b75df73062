package entities

import (
	"time"

	"github.com/google/uuid"
)

// EntityEventAction represents the kind of mutation that occurred
type EntityEventAction string

const (
	EntityEventActionCreated EntityEventAction = "created"
	EntityEventActionUpdated EntityEventAction = "updated"
	EntityEventActionDeleted EntityEventAction = "deleted"
)

// EntityEvent represents a CRUD write to a searchable entity. Events
// drive search-cache invalidation; no physical index is maintained.
type EntityEvent struct {
	ID         string            `json:"id"`
	EntityType EntityType        `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Action     EntityEventAction `json:"action"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewEntityEvent creates a new entity mutation event
func NewEntityEvent(entityType EntityType, entityID string, action EntityEventAction) *EntityEvent {
	return &EntityEvent{
		ID:         uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Timestamp:  time.Now().UTC(),
	}
}
