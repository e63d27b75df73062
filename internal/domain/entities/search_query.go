package entities

import (
	"fmt"
	"unicode/utf8"

	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
)

// Sort options for search queries
const (
	SortByRelevance = "relevance"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Query limits
const (
	MaxQueryLength = 100
	MinPageSize    = 1
	MaxPageSize    = 100
	DefaultPage    = 1
	DefaultLimit   = 10
)

// SearchParams carries the caller-tunable knobs of a search request.
// Zero values mean "use the default".
type SearchParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// SearchQuery is one fully-resolved search request. It is constructed
// per incoming request, immutable once built, and fully determines the
// cache key.
type SearchQuery struct {
	Text        string
	EntityTypes []EntityType
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string

	// Filters are opaque to the aggregator and forwarded verbatim to
	// the provider adapters.
	Filters map[string]string
}

// NewSearchQuery builds a SearchQuery from raw caller input, applying
// defaults for every unset parameter
func NewSearchQuery(text string, types []EntityType, params SearchParams) *SearchQuery {
	q := &SearchQuery{
		Text:        text,
		EntityTypes: types,
		Page:        params.Page,
		PageSize:    params.PageSize,
		SortBy:      params.SortBy,
		SortOrder:   params.SortOrder,
		Filters:     params.Filters,
	}

	if len(q.EntityTypes) == 0 {
		q.EntityTypes = AllEntityTypes()
	}
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = SortByRelevance
	}
	if q.SortOrder == "" {
		q.SortOrder = SortOrderDesc
	}

	return q
}

// Validate rejects malformed queries before any provider is contacted
func (q *SearchQuery) Validate() error {
	textLen := utf8.RuneCountInString(q.Text)
	if textLen == 0 {
		return apperrors.NewValidationError("query text must not be empty")
	}
	if textLen > MaxQueryLength {
		return apperrors.NewValidationError(fmt.Sprintf("query text must not exceed %d characters", MaxQueryLength))
	}
	if q.Page < 1 {
		return apperrors.NewValidationError("page must be at least 1")
	}
	if q.PageSize < MinPageSize || q.PageSize > MaxPageSize {
		return apperrors.NewValidationError(fmt.Sprintf("page size must be between %d and %d", MinPageSize, MaxPageSize))
	}
	if q.SortBy != SortByRelevance {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported sort field %q", q.SortBy))
	}
	if q.SortOrder != SortOrderAsc && q.SortOrder != SortOrderDesc {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported sort order %q", q.SortOrder))
	}
	for _, t := range q.EntityTypes {
		if !t.IsValid() {
			return apperrors.NewValidationError(fmt.Sprintf("unknown entity type %q", t))
		}
	}
	return nil
}
