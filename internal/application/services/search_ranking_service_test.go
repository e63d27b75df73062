package services

import (
	"errors"
	"testing"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func resultIDs(results []entities.SearchResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	svc := NewSearchRankingService()
	outcomes := []entities.ProviderOutcome{
		{EntityType: entities.EntityTypeSchool, Results: []entities.SearchResult{
			{Type: entities.EntityTypeSchool, ID: "s1", RelevanceScore: 3},
			{Type: entities.EntityTypeSchool, ID: "s2", RelevanceScore: 12},
		}},
		{EntityType: entities.EntityTypeUser, Results: []entities.SearchResult{
			{Type: entities.EntityTypeUser, ID: "u1", RelevanceScore: 7},
		}},
	}

	ranked := svc.Rank(outcomes, entities.SortOrderDesc)

	assert.Equal(t, []string{"s2", "u1", "s1"}, resultIDs(ranked))
}

func TestRank_AscendingOrder(t *testing.T) {
	svc := NewSearchRankingService()
	outcomes := []entities.ProviderOutcome{
		{EntityType: entities.EntityTypeSchool, Results: []entities.SearchResult{
			{Type: entities.EntityTypeSchool, ID: "s1", RelevanceScore: 3},
			{Type: entities.EntityTypeSchool, ID: "s2", RelevanceScore: 12},
		}},
	}

	ranked := svc.Rank(outcomes, entities.SortOrderAsc)

	assert.Equal(t, []string{"s1", "s2"}, resultIDs(ranked))
}

func TestRank_TiesBreakByTypeThenID(t *testing.T) {
	svc := NewSearchRankingService()
	tied := []entities.ProviderOutcome{
		{EntityType: entities.EntityTypeUser, Results: []entities.SearchResult{
			{Type: entities.EntityTypeUser, ID: "u2", RelevanceScore: 5},
			{Type: entities.EntityTypeUser, ID: "u1", RelevanceScore: 5},
		}},
		{EntityType: entities.EntityTypeStudent, Results: []entities.SearchResult{
			{Type: entities.EntityTypeStudent, ID: "st1", RelevanceScore: 5},
		}},
	}

	ranked := svc.Rank(tied, entities.SortOrderDesc)

	// "student" < "user" lexically, then ids ascending
	assert.Equal(t, []string{"st1", "u1", "u2"}, resultIDs(ranked))
}

func TestRank_OrderIndependentOfOutcomeArrival(t *testing.T) {
	svc := NewSearchRankingService()
	a := entities.ProviderOutcome{EntityType: entities.EntityTypeSchool, Results: []entities.SearchResult{
		{Type: entities.EntityTypeSchool, ID: "s1", RelevanceScore: 5},
	}}
	b := entities.ProviderOutcome{EntityType: entities.EntityTypeUser, Results: []entities.SearchResult{
		{Type: entities.EntityTypeUser, ID: "u1", RelevanceScore: 5},
	}}

	forward := svc.Rank([]entities.ProviderOutcome{a, b}, entities.SortOrderDesc)
	reversed := svc.Rank([]entities.ProviderOutcome{b, a}, entities.SortOrderDesc)

	assert.Equal(t, forward, reversed)
}

func TestPaginate_WindowsAndBounds(t *testing.T) {
	svc := NewSearchRankingService()
	ranked := []entities.SearchResult{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}

	assert.Equal(t, []string{"a", "b"}, resultIDs(svc.Paginate(ranked, 1, 2)))
	assert.Equal(t, []string{"c", "d"}, resultIDs(svc.Paginate(ranked, 2, 2)))
	assert.Equal(t, []string{"e"}, resultIDs(svc.Paginate(ranked, 3, 2)))

	beyond := svc.Paginate(ranked, 4, 2)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestTotals_SumsProviderCounts(t *testing.T) {
	svc := NewSearchRankingService()
	outcomes := []entities.ProviderOutcome{
		{EntityType: entities.EntityTypeSchool, TotalCount: 42},
		{EntityType: entities.EntityTypeStudent, TotalCount: 8},
	}

	total, byType := svc.Totals(outcomes)

	assert.Equal(t, 50, total)
	assert.Equal(t, 42, byType[entities.EntityTypeSchool])
	assert.Equal(t, 8, byType[entities.EntityTypeStudent])
}

func TestTotals_FailedProviderCountsZero(t *testing.T) {
	svc := NewSearchRankingService()
	outcomes := []entities.ProviderOutcome{
		{EntityType: entities.EntityTypeSchool, TotalCount: 42},
		{EntityType: entities.EntityTypeUser, TotalCount: 13, Err: errors.New("backend down")},
	}

	total, byType := svc.Totals(outcomes)

	assert.Equal(t, 42, total)
	assert.Equal(t, 0, byType[entities.EntityTypeUser])
}
