package services

import (
	"context"
	"path"
	"sync"
	"sync/atomic"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
)

// fakeProvider is a canned search provider. It returns its preset
// matches for every query, emulating a backend that already filtered.
type fakeProvider struct {
	entityType entities.EntityType
	raws       []entities.RawEntity
	total      int
	err        error
	panics     bool

	calls     atomic.Int32
	lastLimit atomic.Int32
}

func (f *fakeProvider) EntityType() entities.EntityType {
	return f.entityType
}

func (f *fakeProvider) Search(ctx context.Context, queryText string, constraints providers.SearchConstraints) ([]entities.RawEntity, int, error) {
	f.calls.Add(1)
	f.lastLimit.Store(int32(constraints.Limit))
	if f.panics {
		panic("provider exploded")
	}
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.raws, f.total, nil
}

// fakeCache is an in-memory CacheProvider with injectable failures
type fakeCache struct {
	mu     sync.Mutex
	store  map[string][]byte
	getErr error
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	data, ok := c.store[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("key not found: " + key)
	}
	return data, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.store[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.store {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.store, key)
		}
	}
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok, nil
}

func (c *fakeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}

func newTestAggregator(cache providers.CacheProvider, searchProviders ...providers.SearchProvider) *SearchAggregatorService {
	highlighter := NewHighlightService()
	mapper := NewSearchMapperService(highlighter)
	fanout := NewSearchFanoutService(searchProviders, mapper, highlighter, 2, nil)
	return NewSearchAggregatorService(fanout, NewSearchRankingService(), NewSuggestionService(), cache, nil, 60, 60)
}
