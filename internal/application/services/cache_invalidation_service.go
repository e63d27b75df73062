package services

import (
	"context"
	"fmt"
	"time"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/observability"
)

// SearchInvalidator drops cached search responses affected by an
// entity mutation
type SearchInvalidator interface {
	IndexEntity(ctx context.Context, entityType entities.EntityType, entityID string) bool
	RebuildIndexes(ctx context.Context) bool
}

// CacheInvalidationService listens for entity mutation events and
// invalidates the affected cached searches. Any CRUD write to a
// searchable entity publishes an event; this service turns it into a
// per-entity-type cache invalidation.
type CacheInvalidationService struct {
	invalidator SearchInvalidator
	eventBus    providers.EventBus
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(invalidator SearchInvalidator, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		invalidator: invalidator,
		eventBus:    eventBus,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins listening for entity events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelEntityUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to entity updates: %w", err)
	}

	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	observability.GetLogger().Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.EntityEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.EntityEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := observability.GetLogger()
	logger.Debug().
		Str("event_id", event.ID).
		Str("entity_type", string(event.EntityType)).
		Str("entity_id", event.EntityID).
		Str("action", string(event.Action)).
		Msg("processing entity mutation for cache invalidation")

	if !s.invalidator.IndexEntity(ctx, event.EntityType, event.EntityID) {
		logger.Warn().
			Str("event_id", event.ID).
			Str("entity_type", string(event.EntityType)).
			Msg("cache invalidation incomplete for entity event")
	}
}
