package metrics

import "sync/atomic"

// InMemoryRecorder implements Recorder with atomic counters.
// Used in development and tests.
type InMemoryRecorder struct {
	cacheHits       atomic.Int64
	cacheMisses     atomic.Int64
	recipesCreated  atomic.Int64
	recipesUpdated  atomic.Int64
	recipesDeleted  atomic.Int64
	ownershipDenied atomic.Int64
}

// NewInMemory returns a Recorder backed by in-process counters.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	CacheHits       int64 `json:"recipe_cache_hits"`
	CacheMisses     int64 `json:"recipe_cache_misses"`
	RecipesCreated  int64 `json:"recipes_created"`
	RecipesUpdated  int64 `json:"recipes_updated"`
	RecipesDeleted  int64 `json:"recipes_deleted"`
	OwnershipDenied int64 `json:"ownership_denied"`
}

// IncRecipeCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncRecipeCacheHit() { m.cacheHits.Add(1) }

// IncRecipeCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncRecipeCacheMiss() { m.cacheMisses.Add(1) }

// IncRecipeCreated increments the created counter.
func (m *InMemoryRecorder) IncRecipeCreated() { m.recipesCreated.Add(1) }

// IncRecipeUpdated increments the updated counter.
func (m *InMemoryRecorder) IncRecipeUpdated() { m.recipesUpdated.Add(1) }

// IncRecipeDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncRecipeDeleted() { m.recipesDeleted.Add(1) }

// IncOwnershipDenied increments the ownership denial counter.
func (m *InMemoryRecorder) IncOwnershipDenied() { m.ownershipDenied.Add(1) }

// Snapshot returns the current counter values.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		CacheHits:       m.cacheHits.Load(),
		CacheMisses:     m.cacheMisses.Load(),
		RecipesCreated:  m.recipesCreated.Load(),
		RecipesUpdated:  m.recipesUpdated.Load(),
		RecipesDeleted:  m.recipesDeleted.Load(),
		OwnershipDenied: m.ownershipDenied.Load(),
	}
}
