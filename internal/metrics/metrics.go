// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Recipe detail cache metrics
	IncRecipeCacheHit()
	IncRecipeCacheMiss()

	// Recipe management metrics
	IncRecipeCreated()
	IncRecipeUpdated()
	IncRecipeDeleted()

	// Authorization metrics
	IncOwnershipDenied()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
