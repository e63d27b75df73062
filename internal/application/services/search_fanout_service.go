package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/observability"
	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
)

// defaultOverFetchFactor over-provisions per-provider fetch limits so
// the global re-rank has enough candidates from every type to fill a
// page. The value is a heuristic, kept tunable through config.
const defaultOverFetchFactor = 2

// SearchFanoutService issues one concurrent search per requested
// entity type and collects the settled outcomes. Provider failures are
// isolated per branch: a broken backend degrades result completeness,
// never availability.
type SearchFanoutService struct {
	searchProviders map[entities.EntityType]providers.SearchProvider
	mapper          *SearchMapperService
	highlighter     *HighlightService
	overFetchFactor int
	metrics         *observability.Metrics
}

// NewSearchFanoutService creates a new fan-out service over the given providers
func NewSearchFanoutService(
	searchProviders []providers.SearchProvider,
	mapper *SearchMapperService,
	highlighter *HighlightService,
	overFetchFactor int,
	metrics *observability.Metrics,
) *SearchFanoutService {
	byType := make(map[entities.EntityType]providers.SearchProvider, len(searchProviders))
	for _, p := range searchProviders {
		byType[p.EntityType()] = p
	}
	if overFetchFactor < 1 {
		overFetchFactor = defaultOverFetchFactor
	}
	return &SearchFanoutService{
		searchProviders: byType,
		mapper:          mapper,
		highlighter:     highlighter,
		overFetchFactor: overFetchFactor,
		metrics:         metrics,
	}
}

// FanOut runs one provider search per requested entity type and waits
// for every branch to settle. Outcomes come back in request order, one
// per entity type, regardless of which provider finished first.
func (s *SearchFanoutService) FanOut(ctx context.Context, query *entities.SearchQuery) []entities.ProviderOutcome {
	limit := s.perProviderLimit(query.PageSize, len(query.EntityTypes))

	outcomes := make([]entities.ProviderOutcome, len(query.EntityTypes))
	var wg sync.WaitGroup
	for i, entityType := range query.EntityTypes {
		wg.Add(1)
		go func(i int, entityType entities.EntityType) {
			defer wg.Done()
			outcomes[i] = s.searchOne(ctx, entityType, query, limit)
		}(i, entityType)
	}
	wg.Wait()

	return outcomes
}

// searchOne runs a single branch. Errors and panics are converted into
// a failed outcome so sibling branches and the caller are unaffected.
func (s *SearchFanoutService) searchOne(ctx context.Context, entityType entities.EntityType, query *entities.SearchQuery, limit int) (outcome entities.ProviderOutcome) {
	logger := observability.LoggerFromContext(ctx)
	start := time.Now()

	outcome = entities.ProviderOutcome{EntityType: entityType, Results: []entities.SearchResult{}}
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("entity_type", string(entityType)).
				Interface("panic", r).
				Msg("search provider panicked")
			outcome = entities.ProviderOutcome{
				EntityType: entityType,
				Results:    []entities.SearchResult{},
				Err:        apperrors.NewExternalError(fmt.Sprintf("%s search provider panicked", entityType), fmt.Errorf("%v", r)),
			}
		}
		observability.RecordProviderSearch(ctx, s.metrics, string(entityType), time.Since(start), outcome.Err != nil)
	}()

	provider, ok := s.searchProviders[entityType]
	if !ok {
		// Query validation should have rejected this upstream
		outcome.Err = apperrors.NewUnsupportedError(fmt.Sprintf("no search provider registered for entity type %q", entityType))
		return outcome
	}

	raws, total, err := provider.Search(ctx, query.Text, providers.SearchConstraints{
		Limit:   limit,
		Filters: query.Filters,
	})
	if err != nil {
		logger.Warn().
			Err(err).
			Str("entity_type", string(entityType)).
			Msg("search provider failed, continuing without its results")
		outcome.Err = err
		return outcome
	}

	results := make([]entities.SearchResult, 0, len(raws))
	for _, raw := range raws {
		highlights := s.highlighter.Extract(raw, query.Text)
		result, err := s.mapper.Map(entityType, raw, query.Text, highlights)
		if err != nil {
			logger.Error().
				Err(err).
				Str("entity_type", string(entityType)).
				Msg("dropping unmappable search result")
			continue
		}
		results = append(results, result)
	}

	outcome.Results = results
	outcome.TotalCount = total
	return outcome
}

// perProviderLimit is ceil(overFetchFactor * pageSize / numTypes)
func (s *SearchFanoutService) perProviderLimit(pageSize, numTypes int) int {
	if numTypes == 0 {
		return pageSize
	}
	limit := (s.overFetchFactor*pageSize + numTypes - 1) / numTypes
	if limit < 1 {
		limit = 1
	}
	return limit
}
