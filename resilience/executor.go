package resilience

import (
	"context"
	"errors"

	"github.com/jonwraymond/depline/resilience/classify"
	"github.com/jonwraymond/depline/resilience/fallback"
	"github.com/jonwraymond/depline/resilience/registry"
)

// Options configures one Execute call beyond the positional arguments every
// call needs.
type Options[T any] struct {
	// HandleExecutionFaults admits infrastructure-admission faults (broken
	// or isolated circuit, pipeline timeout) into both fallback eligibility
	// and the registry key: a caller
	// that wants retry/circuit-breaking behavior to depend purely on the
	// dependency's own responses leaves this false.
	HandleExecutionFaults bool

	// FallbackGenerator, when set, substitutes a typed value for any fault
	// classify.ShouldFallback admits, instead of propagating the error.
	FallbackGenerator func(err error) T

	// OnFallback is called, if set, whenever FallbackGenerator is invoked.
	OnFallback func(err error)

	// Stale, when set, remembers every successful result and serves the
	// last one as a fallback substitute on failure, taking priority over
	// FallbackGenerator. nil disables stale-if-error behavior entirely.
	Stale *StaleCache[T]

	// ThrowIfNotFound controls the executor's caller-side 404 policy.
	// When false (the default), a DependencyFault
	// carrying HTTP status 404 is treated as a successful empty result: T's
	// zero value is returned with a nil error, and the pipeline never sees
	// a fault (no retry, no breaker accounting, no fallback). Set true to
	// let a 404 propagate and classify like any other dependency fault.
	ThrowIfNotFound bool

	// OnBadRequest, when set, is invoked in place of propagating a
	// DependencyFault carrying HTTP status 400; Execute then returns T's
	// zero value with a nil error, again short-circuiting before the
	// pipeline classifies anything. A nil OnBadRequest lets 400 propagate
	// normally.
	OnBadRequest func(err error)
}

// httpStatus extracts the HTTP status carried by err, if any, via the same
// interface classify.FromError uses to recognize KindHTTPStatus.
func httpStatus(err error) (int, bool) {
	var statusErr interface{ HTTPStatus() int }
	if errors.As(err, &statusErr) {
		return statusErr.HTTPStatus(), true
	}
	return 0, false
}

// Execute runs action through endpoint's resilience pipeline: Retry wraps
// CircuitBreaker wraps Timeout wraps [Bulkhead] wraps RateLimit.
// method gates retry idempotency; resource
// partitions the registry's circuit-breaker shard within endpoint;
// partition identifies the caller for rate-limit accounting; operationKey
// names the call for telemetry.
func Execute[T any](ctx context.Context, core *Core, endpoint, resource, method, partition, operationKey string, action func(context.Context) (T, error), opts Options[T]) (T, error) {
	rc := acquireContext()
	opKey := core.qualifiedKey(operationKey)
	rc.OperationKey = opKey
	rc.RateLimitPartition = partition
	if opts.FallbackGenerator != nil {
		rc.fallbackGenerator = opts.FallbackGenerator
	}
	rc.Cancel = ctx
	defer releaseContext(rc)

	p, err := core.registry.Get(registry.Key{
		Endpoint:               endpoint,
		Resource:               resource,
		HandlesExecutionFaults: opts.HandleExecutionFaults,
	})
	if err != nil {
		var zero T
		return zero, err
	}

	spanCtx, span := core.telemetry.startSpan(ctx, endpoint, resource)
	var pipelineErr error
	defer func() { core.telemetry.endSpan(span, pipelineErr) }()

	var result T
	pipelineErr = p.Execute(spanCtx, method, partition, func(opCtx context.Context) error {
		var innerErr error
		result, innerErr = action(opCtx)

		// Caller-side policy applied to the raw action response *inside*
		// the closure, before the pipeline's retry/breaker/fallback layers
		// ever classify it, so a 404/400 handled here never triggers any
		// of them.
		if innerErr != nil {
			if status, ok := httpStatus(innerErr); ok {
				switch status {
				case 404:
					if !opts.ThrowIfNotFound {
						var zero T
						result, innerErr = zero, nil
					}
				case 400:
					if opts.OnBadRequest != nil {
						opts.OnBadRequest(innerErr)
						var zero T
						result, innerErr = zero, nil
					}
				}
			}
		}

		return innerErr
	}, func(attempt int, _ error) {
		core.telemetry.retryAttempt(ctx, opKey, attempt)
	})

	if pipelineErr == nil {
		if opts.Stale != nil {
			opts.Stale.Remember(ctx, opKey, result)
		}
		return result, nil
	}

	core.recordPipelineTelemetry(ctx, pipelineErr, method, opKey)

	generator, _ := rc.fallbackGenerator.(func(err error) T)
	if opts.Stale != nil {
		generator = opts.Stale.Generator(ctx, opKey)
	}
	if generator == nil {
		var zero T
		return zero, pipelineErr
	}

	fault := classify.FromError(pipelineErr, method, ctx)
	fallbackCfg := fallback.Config[T]{
		ShouldHandle: func(error) bool { return classify.ShouldFallback(fault, opts.HandleExecutionFaults) },
		Generator:    generator,
		OnFallback: func(err error) {
			core.telemetry.fallbackUsed(ctx, opKey)
			if opts.OnFallback != nil {
				opts.OnFallback(err)
			}
		},
	}

	return fallback.Execute(ctx, fallbackCfg, func(context.Context) (T, error) {
		return result, pipelineErr
	})
}

// recordPipelineTelemetry emits the strategy-specific counter matching
// err's classification, so callers get on-timeout/on-rate-limiter-rejected
// signal without each strategy package depending on telemetry directly.
func (c *Core) recordPipelineTelemetry(ctx context.Context, err error, method, operationKey string) {
	fault := classify.FromError(err, method, ctx)
	switch fault.Kind {
	case classify.KindTimeoutRejected:
		c.telemetry.timeout(ctx, operationKey)
	case classify.KindRateLimitRejected:
		c.telemetry.rateLimitRejected(ctx, operationKey)
	}
}
