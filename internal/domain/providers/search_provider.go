package providers

import (
	"context"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
)

// SearchConstraints bounds one provider invocation
type SearchConstraints struct {
	// Limit caps how many raw matches the provider may return. The
	// fan-out coordinator over-provisions this relative to the page
	// size; TotalCount still reflects the full match set.
	Limit int

	// Filters are forwarded verbatim from the search query. Providers
	// apply the keys they understand and ignore the rest.
	Filters map[string]string
}

// SearchProvider performs the storage-level search for one entity
// type. Implementations own their latency bound: a provider must fail
// with an error rather than hang indefinitely.
type SearchProvider interface {
	// EntityType identifies which entity type this provider serves
	EntityType() entities.EntityType

	// Search returns at most constraints.Limit raw matches for the
	// query text, plus the total number of matches in storage
	Search(ctx context.Context, queryText string, constraints SearchConstraints) ([]entities.RawEntity, int, error)
}
