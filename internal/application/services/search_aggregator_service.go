package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/observability"
)

const (
	searchCachePrefix     = "search"
	suggestionCachePrefix = "suggest"

	// minSuggestionQueryRunes rejects suggestion lookups for queries
	// too short to say anything useful
	minSuggestionQueryRunes = 2

	// suggestionPageSize is the pipeline page size for the
	// suggestions-only fast path
	suggestionPageSize = 5
)

// SearchAggregatorService is the public entry point for cross-entity
// search: cache check, fan-out, global rank, paginate, suggest, cache
// store. It also owns search-cache invalidation for entity mutations.
type SearchAggregatorService struct {
	fanout    *SearchFanoutService
	ranker    *SearchRankingService
	suggester *SuggestionService

	// cache may be nil, in which case every lookup is a miss and
	// stores are no-ops
	cache   providers.CacheProvider
	metrics *observability.Metrics

	cacheTTLSeconds      int
	suggestionTTLSeconds int
}

// NewSearchAggregatorService creates a new search aggregator
func NewSearchAggregatorService(
	fanout *SearchFanoutService,
	ranker *SearchRankingService,
	suggester *SuggestionService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
	cacheTTLSeconds, suggestionTTLSeconds int,
) *SearchAggregatorService {
	return &SearchAggregatorService{
		fanout:               fanout,
		ranker:               ranker,
		suggester:            suggester,
		cache:                cache,
		metrics:              metrics,
		cacheTTLSeconds:      cacheTTLSeconds,
		suggestionTTLSeconds: suggestionTTLSeconds,
	}
}

// GlobalSearch searches every known entity type
func (s *SearchAggregatorService) GlobalSearch(ctx context.Context, queryText string, params entities.SearchParams) (*entities.AggregatedResult, error) {
	return s.SearchEntities(ctx, nil, queryText, params)
}

// SearchEntities searches the given entity types (all types when
// empty). Invalid queries fail immediately; provider and cache
// failures degrade the result but never surface to the caller.
func (s *SearchAggregatorService) SearchEntities(ctx context.Context, entityTypes []entities.EntityType, queryText string, params entities.SearchParams) (*entities.AggregatedResult, error) {
	query := entities.NewSearchQuery(queryText, entityTypes, params)
	if err := query.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := buildCacheKey(searchCachePrefix, query)

	if cached, ok := s.cachedResult(ctx, key); ok {
		observability.RecordCacheHit(ctx, s.metrics, searchCachePrefix)
		return cached, nil
	}
	observability.RecordCacheMiss(ctx, s.metrics, searchCachePrefix)

	outcomes := s.fanout.FanOut(ctx, query)
	ranked := s.ranker.Rank(outcomes, query.SortOrder)
	totalItems, byType := s.ranker.Totals(outcomes)
	pageResults := s.ranker.Paginate(ranked, query.Page, query.PageSize)
	suggestions := s.suggester.Generate(query.Text, ranked)

	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + query.PageSize - 1) / query.PageSize
	}

	result := &entities.AggregatedResult{
		Results: pageResults,
		Meta: entities.SearchMeta{
			Query:            query.Text,
			Page:             query.Page,
			Limit:            query.PageSize,
			TotalItems:       totalItems,
			TotalPages:       totalPages,
			HasNextPage:      query.Page < totalPages,
			HasPrevPage:      query.Page > 1,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			ResultsByType:    byType,
		},
		Suggestions: suggestions,
	}

	s.storeCached(ctx, key, result, s.cacheTTLSeconds)
	return result, nil
}

// GetSuggestions is the suggestions-only fast path. Queries shorter
// than two characters return an empty list without contacting any
// provider; everything else runs the full pipeline at a small page
// size, cached under its own key.
func (s *SearchAggregatorService) GetSuggestions(ctx context.Context, queryText string, entityTypes []entities.EntityType) ([]string, error) {
	trimmed := strings.TrimSpace(queryText)
	if utf8.RuneCountInString(trimmed) < minSuggestionQueryRunes {
		return []string{}, nil
	}

	query := entities.NewSearchQuery(trimmed, entityTypes, entities.SearchParams{PageSize: suggestionPageSize})
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := buildCacheKey(suggestionCachePrefix, query)
	if cached, ok := s.cachedSuggestions(ctx, key); ok {
		observability.RecordCacheHit(ctx, s.metrics, suggestionCachePrefix)
		return cached, nil
	}
	observability.RecordCacheMiss(ctx, s.metrics, suggestionCachePrefix)

	outcomes := s.fanout.FanOut(ctx, query)
	ranked := s.ranker.Rank(outcomes, query.SortOrder)
	suggestions := s.suggester.Generate(query.Text, ranked)

	if data, err := json.Marshal(suggestions); err == nil && s.cache != nil {
		if err := s.cache.Set(ctx, key, data, s.suggestionTTLSeconds); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache suggestions")
		}
	}
	return suggestions, nil
}

// IndexEntity is the cache-invalidation trigger for one entity
// mutation. There is no physical index: search always queries live
// data, so indexing reduces to dropping the cached searches that could
// include the mutated type.
func (s *SearchAggregatorService) IndexEntity(ctx context.Context, entityType entities.EntityType, entityID string) bool {
	logger := observability.LoggerFromContext(ctx)
	if !entityType.IsValid() {
		logger.Warn().Str("entity_type", string(entityType)).Msg("ignoring index request for unknown entity type")
		return false
	}
	if s.cache == nil {
		return true
	}

	ok := true
	for _, prefix := range []string{searchCachePrefix, suggestionCachePrefix} {
		pattern := fmt.Sprintf("%s:*%s*", prefix, entityType)
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			logger.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate search cache")
			ok = false
		}
	}
	logger.Debug().
		Str("entity_type", string(entityType)).
		Str("entity_id", entityID).
		Msg("invalidated cached searches for entity type")
	return ok
}

// RebuildIndexes drops every cached search and suggestion response
func (s *SearchAggregatorService) RebuildIndexes(ctx context.Context) bool {
	if s.cache == nil {
		return true
	}
	logger := observability.LoggerFromContext(ctx)

	ok := true
	for _, prefix := range []string{searchCachePrefix, suggestionCachePrefix} {
		if err := s.cache.DeletePattern(ctx, prefix+":*"); err != nil {
			logger.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache prefix")
			ok = false
		}
	}
	return ok
}

func (s *SearchAggregatorService) cachedResult(ctx context.Context, key string) (*entities.AggregatedResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		// Not found and cache unavailability both force a miss
		return nil, false
	}
	var result entities.AggregatedResult
	if err := json.Unmarshal(data, &result); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("discarding corrupt cached search response")
		return nil, false
	}
	return &result, true
}

func (s *SearchAggregatorService) cachedSuggestions(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var suggestions []string
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, false
	}
	return suggestions, true
}

func (s *SearchAggregatorService) storeCached(ctx context.Context, key string, result *entities.AggregatedResult, ttlSeconds int) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Msg("failed to marshal search response for caching")
		return
	}
	if err := s.cache.Set(ctx, key, data, ttlSeconds); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache search response")
	}
}

// buildCacheKey derives a deterministic key from everything that
// shapes the response: text, page window, sort, entity types, and
// filters. Filters are part of the key so two queries differing only
// by filter can never collide. The entity-type list stays readable in
// the key so mutation-driven invalidation can match on it.
func buildCacheKey(prefix string, query *entities.SearchQuery) string {
	types := make([]string, len(query.EntityTypes))
	for i, t := range query.EntityTypes {
		types[i] = string(t)
	}
	sort.Strings(types)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|%d|%d|%s|%s", query.Text, query.Page, query.PageSize, query.SortBy, query.SortOrder)

	filterKeys := make([]string, 0, len(query.Filters))
	for k := range query.Filters {
		filterKeys = append(filterKeys, k)
	}
	sort.Strings(filterKeys)
	for _, k := range filterKeys {
		fmt.Fprintf(&sb, "|%s=%s", k, query.Filters[k])
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return fmt.Sprintf("%s:%s:%s", prefix, strings.Join(types, ","), hex.EncodeToString(sum[:8]))
}
