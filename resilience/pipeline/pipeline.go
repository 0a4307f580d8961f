// Package pipeline composes the individual resilience strategies in a
// fixed execution order: Retry wraps CircuitBreaker wraps Timeout wraps
// [Bulkhead] wraps RateLimit wraps the operation itself.
// Each layer is one of the sibling strategy packages; Pipeline's
// job is only the nesting and the per-call classify.Fault construction
// every layer's failure predicate needs.
package pipeline

import (
	"context"
	"time"

	"github.com/jonwraymond/depline/resilience/circuit"
	"github.com/jonwraymond/depline/resilience/classify"
	"github.com/jonwraymond/depline/resilience/ratelimit"
	"github.com/jonwraymond/depline/resilience/retry"
	"github.com/jonwraymond/depline/resilience/timeout"
)

// RateLimitConfig configures the RateLimit layer.
type RateLimitConfig struct {
	// Rate is the number of admissions per Period. Rate<=0 disables
	// rate limiting for this pipeline.
	Rate   float64
	Period time.Duration
}

// Config configures one endpoint+resource pipeline shard.
type Config struct {
	// Endpoint names the dependency this pipeline guards, used as the
	// rate limiter's partitioning namespace.
	Endpoint string

	Retry     retry.Config
	Circuit   circuit.Config
	Timeout   timeout.Config
	RateLimit RateLimitConfig

	// Bulkhead, if non-nil, inserts a concurrency-limiting layer between
	// Timeout and RateLimit. Off by default.
	Bulkhead *BulkheadConfig
}

// Pipeline is one built, ready-to-run composition. Registry owns the
// mapping from (endpoint, resource, handlesExecutionFaults) to a Pipeline;
// Pipeline itself knows nothing about that key.
type Pipeline struct {
	endpoint  string
	retryCfg  retry.Config
	breaker   *circuit.Breaker
	bulkhead  *bulkhead
	timeout   *timeout.Timeout
	rateLimit RateLimitConfig
	limiter   *ratelimit.Limiter
}

// New builds a Pipeline. limiter is shared across every pipeline on the
// same Core; the breaker and bulkhead are owned exclusively by this
// Pipeline since their state is specific to one endpoint+resource shard.
func New(cfg Config, limiter *ratelimit.Limiter) *Pipeline {
	return &Pipeline{
		endpoint:  cfg.Endpoint,
		retryCfg:  cfg.Retry,
		breaker:   circuit.New(cfg.Circuit),
		bulkhead:  newBulkhead(cfg.Bulkhead),
		timeout:   timeout.New(cfg.Timeout),
		rateLimit: cfg.RateLimit,
		limiter:   limiter,
	}
}

// Execute runs op through every configured layer in order. method is the
// HTTP method of the call (used by the retry idempotency gate); partition
// identifies the caller for rate-limit accounting; onRetry, if non-nil, is
// called before each retry wait (the executor uses it to attribute retry
// telemetry to the calling operation, which Pipeline itself doesn't know
// the name of).
func (p *Pipeline) Execute(ctx context.Context, method, partition string, op func(context.Context) error, onRetry func(attempt int, err error)) error {
	retryCfg := p.retryCfg
	retryCfg.CanRetry = func(err error) bool {
		if err == nil {
			return false
		}
		return classify.CanRetry(classify.FromError(err, method, ctx))
	}
	if onRetry != nil {
		retryCfg.OnRetry = func(attempt int, err error, _ time.Duration) {
			onRetry(attempt, err)
		}
	}

	return retry.Execute(ctx, retryCfg, func(attemptCtx context.Context) error {
		return p.executeOnce(attemptCtx, method, partition, op)
	})
}

func (p *Pipeline) executeOnce(ctx context.Context, method, partition string, op func(context.Context) error) error {
	isFailure := func(err error) bool {
		if err == nil {
			return false
		}
		return classify.CanCircuitBreak(classify.FromError(err, method, ctx))
	}

	return p.breaker.Execute(ctx, isFailure, func(ctx context.Context) error {
		return p.timeout.Execute(ctx, func(ctx context.Context) error {
			inner := func(ctx context.Context) error {
				return p.limiter.Execute(ctx, p.endpoint, partition, p.rateLimit.Rate, p.rateLimit.Period, op)
			}
			if p.bulkhead != nil {
				return p.bulkhead.Execute(ctx, inner)
			}
			return inner(ctx)
		})
	})
}

// State reports the circuit breaker's current state for this shard.
func (p *Pipeline) State() circuit.State {
	return p.breaker.State()
}

// Isolate administratively isolates this shard's circuit breaker.
func (p *Pipeline) Isolate() {
	p.breaker.Isolate()
}

// Reset clears this shard's circuit breaker, re-isolating it if isolate is
// true (used to preserve an admin isolation across a config reload).
func (p *Pipeline) Reset(isolate bool) {
	p.breaker.Reset(isolate)
}

// BulkheadMetrics reports the optional bulkhead layer's occupancy, or the
// zero value if no bulkhead is configured.
func (p *Pipeline) BulkheadMetrics() BulkheadMetrics {
	if p.bulkhead == nil {
		return BulkheadMetrics{}
	}
	return p.bulkhead.Metrics()
}
