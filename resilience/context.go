package resilience

import (
	"context"
	"sync"
)

// ResilienceContext is the per-invocation property bag the executor
// populates before running a pipeline: the metrics/log correlation key, the
// rate-limit partition, an optional typed fallback generator, and the
// caller's own cancellation. Pooled via sync.Pool since one is allocated
// per Execute call.
type ResilienceContext struct {
	OperationKey       string
	RateLimitPartition string

	// fallbackGenerator produces the substitute value Execute returns when
	// the pipeline signals a fault the attached fallback is configured to
	// handle. Stored as `any` since ResilienceContext itself is not
	// generic; Execute[T] type-asserts it back to func(error) T.
	fallbackGenerator any

	// Cancel is the caller's own cancellation signal, consulted by
	// classify.FromError to distinguish caller-originated cancellation from
	// a pipeline-issued one.
	Cancel context.Context
}

func (rc *ResilienceContext) reset() {
	rc.OperationKey = ""
	rc.RateLimitPartition = ""
	rc.fallbackGenerator = nil
	rc.Cancel = nil
}

var contextPool = sync.Pool{
	New: func() any { return &ResilienceContext{} },
}

// acquireContext retrieves a ResilienceContext from the pool, ready for a
// fresh Execute call.
func acquireContext() *ResilienceContext {
	return contextPool.Get().(*ResilienceContext)
}

// releaseContext returns rc to the pool. Callers must not use rc
// afterward.
func releaseContext(rc *ResilienceContext) {
	rc.reset()
	contextPool.Put(rc)
}
