package services

import (
	"sort"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
)

// SearchRankingService merges the per-provider result streams into one
// globally ordered sequence and slices page windows out of it.
type SearchRankingService struct{}

// NewSearchRankingService creates a new ranking service
func NewSearchRankingService() *SearchRankingService {
	return &SearchRankingService{}
}

// Rank concatenates every outcome's results and sorts them by
// relevance score, descending by default. Ties are broken by
// (type, id) ascending so pagination is deterministic across calls,
// independent of which provider finished first.
func (s *SearchRankingService) Rank(outcomes []entities.ProviderOutcome, sortOrder string) []entities.SearchResult {
	merged := []entities.SearchResult{}
	for _, outcome := range outcomes {
		merged = append(merged, outcome.Results...)
	}

	ascending := sortOrder == entities.SortOrderAsc
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].RelevanceScore != merged[j].RelevanceScore {
			if ascending {
				return merged[i].RelevanceScore < merged[j].RelevanceScore
			}
			return merged[i].RelevanceScore > merged[j].RelevanceScore
		}
		if merged[i].Type != merged[j].Type {
			return merged[i].Type < merged[j].Type
		}
		return merged[i].ID < merged[j].ID
	})

	return merged
}

// Paginate slices the [(page-1)*pageSize, page*pageSize) window out of
// the ranked sequence. The sequence is a capped per-provider sample,
// so deep pages may omit matches that were never fetched; that bounds
// adapter load per query and is accepted behavior, not a bug to fix
// here.
func (s *SearchRankingService) Paginate(ranked []entities.SearchResult, page, pageSize int) []entities.SearchResult {
	start := (page - 1) * pageSize
	if start >= len(ranked) {
		return []entities.SearchResult{}
	}
	end := start + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end]
}

// Totals sums the provider-reported match counts. This deliberately
// reflects the full match set in storage, not the capped sample that
// was fetched, so has_next_page can be true even when the current
// sample is exhausted.
func (s *SearchRankingService) Totals(outcomes []entities.ProviderOutcome) (int, map[entities.EntityType]int) {
	byType := make(map[entities.EntityType]int, len(outcomes))
	total := 0
	for _, outcome := range outcomes {
		count := outcome.TotalCount
		if outcome.Err != nil {
			count = 0
		}
		byType[outcome.EntityType] = count
		total += count
	}
	return total, byType
}
