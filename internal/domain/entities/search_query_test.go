package entities

import (
	"strings"
	"testing"

	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchQuery_AppliesDefaults(t *testing.T) {
	q := NewSearchQuery("springfield", nil, SearchParams{})

	assert.Equal(t, AllEntityTypes(), q.EntityTypes)
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.PageSize)
	assert.Equal(t, SortByRelevance, q.SortBy)
	assert.Equal(t, SortOrderDesc, q.SortOrder)
	require.NoError(t, q.Validate())
}

func TestNewSearchQuery_KeepsExplicitValues(t *testing.T) {
	q := NewSearchQuery("springfield", []EntityType{EntityTypeSchool}, SearchParams{
		Page:      3,
		PageSize:  25,
		SortOrder: SortOrderAsc,
		Filters:   map[string]string{"city": "Lagos"},
	})

	assert.Equal(t, []EntityType{EntityTypeSchool}, q.EntityTypes)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.PageSize)
	assert.Equal(t, SortOrderAsc, q.SortOrder)
	assert.Equal(t, "Lagos", q.Filters["city"])
	require.NoError(t, q.Validate())
}

func TestValidate_RejectsMalformedQueries(t *testing.T) {
	cases := []struct {
		name  string
		query *SearchQuery
	}{
		{"empty text", NewSearchQuery("", nil, SearchParams{})},
		{"text too long", NewSearchQuery(strings.Repeat("a", MaxQueryLength+1), nil, SearchParams{})},
		{"negative page", NewSearchQuery("q", nil, SearchParams{Page: -1})},
		{"page size too large", NewSearchQuery("q", nil, SearchParams{PageSize: MaxPageSize + 1})},
		{"unsupported sort field", NewSearchQuery("q", nil, SearchParams{SortBy: "name"})},
		{"unsupported sort order", NewSearchQuery("q", nil, SearchParams{SortOrder: "sideways"})},
		{"unknown entity type", NewSearchQuery("q", []EntityType{"invoice"}, SearchParams{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.query.Validate()
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestValidate_AcceptsMaxLengthText(t *testing.T) {
	q := NewSearchQuery(strings.Repeat("é", MaxQueryLength), nil, SearchParams{})
	assert.NoError(t, q.Validate())
}

func TestParseEntityType(t *testing.T) {
	for _, entityType := range AllEntityTypes() {
		parsed, ok := ParseEntityType(string(entityType))
		assert.True(t, ok)
		assert.Equal(t, entityType, parsed)
	}

	_, ok := ParseEntityType("invoice")
	assert.False(t, ok)
}

func TestRawEntity_StringFieldNamesSorted(t *testing.T) {
	raw := RawEntity{"name": "x", "city": "y", "email": "z", "rating": 4}

	assert.Equal(t, []string{"city", "email", "name"}, raw.StringFieldNames())
	assert.Equal(t, "x", raw.StringField("name"))
	assert.Equal(t, "", raw.StringField("rating"))
	assert.Equal(t, "", raw.StringField("missing"))
}
