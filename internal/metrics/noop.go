package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRecipeCacheHit is a no-op.
func (n *NoopRecorder) IncRecipeCacheHit() {}

// IncRecipeCacheMiss is a no-op.
func (n *NoopRecorder) IncRecipeCacheMiss() {}

// IncRecipeCreated is a no-op.
func (n *NoopRecorder) IncRecipeCreated() {}

// IncRecipeUpdated is a no-op.
func (n *NoopRecorder) IncRecipeUpdated() {}

// IncRecipeDeleted is a no-op.
func (n *NoopRecorder) IncRecipeDeleted() {}

// IncOwnershipDenied is a no-op.
func (n *NoopRecorder) IncOwnershipDenied() {}
