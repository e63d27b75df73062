package services

import (
	"context"
	"testing"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFanout(searchProviders ...*fakeProvider) *SearchFanoutService {
	highlighter := NewHighlightService()
	mapper := NewSearchMapperService(highlighter)
	list := make([]providers.SearchProvider, 0, len(searchProviders))
	for _, p := range searchProviders {
		list = append(list, p)
	}
	return NewSearchFanoutService(list, mapper, highlighter, 2, nil)
}

func TestFanOut_OutcomesFollowRequestOrder(t *testing.T) {
	schools := &fakeProvider{
		entityType: entities.EntityTypeSchool,
		raws:       []entities.RawEntity{{"id": "school-1", "name": "Springfield High"}},
		total:      1,
	}
	users := &fakeProvider{
		entityType: entities.EntityTypeUser,
		raws:       []entities.RawEntity{{"id": "user-1", "first_name": "Jane", "last_name": "Springfield"}},
		total:      1,
	}
	fanout := newTestFanout(schools, users)
	query := entities.NewSearchQuery("springfield", []entities.EntityType{entities.EntityTypeUser, entities.EntityTypeSchool}, entities.SearchParams{})

	outcomes := fanout.FanOut(context.Background(), query)

	require.Len(t, outcomes, 2)
	assert.Equal(t, entities.EntityTypeUser, outcomes[0].EntityType)
	assert.Equal(t, entities.EntityTypeSchool, outcomes[1].EntityType)
	require.Len(t, outcomes[1].Results, 1)
	assert.Equal(t, "school-1", outcomes[1].Results[0].ID)
	assert.Equal(t, 1, outcomes[1].TotalCount)
}

func TestFanOut_PerProviderLimit(t *testing.T) {
	schools := &fakeProvider{entityType: entities.EntityTypeSchool}
	users := &fakeProvider{entityType: entities.EntityTypeUser}
	fanout := newTestFanout(schools, users)
	query := entities.NewSearchQuery("anything", []entities.EntityType{entities.EntityTypeSchool, entities.EntityTypeUser}, entities.SearchParams{PageSize: 10})

	fanout.FanOut(context.Background(), query)

	// ceil(2 * 10 / 2) per provider
	assert.Equal(t, int32(10), schools.lastLimit.Load())
	assert.Equal(t, int32(10), users.lastLimit.Load())
}

func TestFanOut_PerProviderLimitAcrossAllTypes(t *testing.T) {
	all := make([]*fakeProvider, 0, len(entities.AllEntityTypes()))
	for _, entityType := range entities.AllEntityTypes() {
		all = append(all, &fakeProvider{entityType: entityType})
	}
	fanout := newTestFanout(all...)
	query := entities.NewSearchQuery("anything", nil, entities.SearchParams{PageSize: 10})

	fanout.FanOut(context.Background(), query)

	// ceil(2 * 10 / 5) per provider
	for _, p := range all {
		assert.Equal(t, int32(4), p.lastLimit.Load())
	}
}

func TestFanOut_ProviderErrorIsolated(t *testing.T) {
	schools := &fakeProvider{
		entityType: entities.EntityTypeSchool,
		raws:       []entities.RawEntity{{"id": "school-1", "name": "Springfield High"}},
		total:      1,
	}
	users := &fakeProvider{
		entityType: entities.EntityTypeUser,
		err:        apperrors.NewExternalError("users backend down", nil),
	}
	fanout := newTestFanout(schools, users)
	query := entities.NewSearchQuery("springfield", []entities.EntityType{entities.EntityTypeSchool, entities.EntityTypeUser}, entities.SearchParams{})

	outcomes := fanout.FanOut(context.Background(), query)

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0].Err)
	assert.Len(t, outcomes[0].Results, 1)
	assert.Error(t, outcomes[1].Err)
	assert.NotNil(t, outcomes[1].Results)
	assert.Empty(t, outcomes[1].Results)
}

func TestFanOut_ProviderPanicIsolated(t *testing.T) {
	schools := &fakeProvider{
		entityType: entities.EntityTypeSchool,
		raws:       []entities.RawEntity{{"id": "school-1", "name": "Springfield High"}},
		total:      1,
	}
	users := &fakeProvider{entityType: entities.EntityTypeUser, panics: true}
	fanout := newTestFanout(schools, users)
	query := entities.NewSearchQuery("springfield", []entities.EntityType{entities.EntityTypeSchool, entities.EntityTypeUser}, entities.SearchParams{})

	outcomes := fanout.FanOut(context.Background(), query)

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.True(t, apperrors.IsType(outcomes[1].Err, apperrors.ErrorTypeExternal))
	assert.Empty(t, outcomes[1].Results)
}

func TestFanOut_MissingProviderFailsThatBranchOnly(t *testing.T) {
	schools := &fakeProvider{
		entityType: entities.EntityTypeSchool,
		raws:       []entities.RawEntity{{"id": "school-1", "name": "Springfield High"}},
		total:      1,
	}
	fanout := newTestFanout(schools)
	query := entities.NewSearchQuery("springfield", []entities.EntityType{entities.EntityTypeSchool, entities.EntityTypeUser}, entities.SearchParams{})

	outcomes := fanout.FanOut(context.Background(), query)

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0].Err)
	assert.True(t, apperrors.IsType(outcomes[1].Err, apperrors.ErrorTypeUnsupported))
}

func TestFanOut_UnmappableResultsDropped(t *testing.T) {
	rogue := &fakeProvider{
		entityType: entities.EntityType("invoice"),
		raws:       []entities.RawEntity{{"id": "inv-1"}},
		total:      1,
	}
	fanout := newTestFanout(rogue)
	query := entities.NewSearchQuery("anything", []entities.EntityType{entities.EntityType("invoice")}, entities.SearchParams{})

	outcomes := fanout.FanOut(context.Background(), query)

	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
	assert.Empty(t, outcomes[0].Results)
	assert.Equal(t, 1, outcomes[0].TotalCount)
}

func TestFanOut_AttachesHighlights(t *testing.T) {
	schools := &fakeProvider{
		entityType: entities.EntityTypeSchool,
		raws:       []entities.RawEntity{{"id": "school-1", "name": "Springfield High"}},
		total:      1,
	}
	fanout := newTestFanout(schools)
	query := entities.NewSearchQuery("springfield", []entities.EntityType{entities.EntityTypeSchool}, entities.SearchParams{})

	outcomes := fanout.FanOut(context.Background(), query)

	require.Len(t, outcomes[0].Results, 1)
	assert.Equal(t, []string{"<em>Springfield</em> High"}, outcomes[0].Results[0].Highlights)
}
