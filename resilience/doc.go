// Package resilience wraps outbound dependency calls with a fixed
// composition of resilience strategies: Retry wraps CircuitBreaker wraps
// Timeout wraps an optional Bulkhead wraps RateLimit wraps the operation
// itself.
//
// # Ecosystem Position
//
// resilience sits between application code and external service calls:
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                     Dependency Call Flow                      │
//	├───────────────────────────────────────────────────────────────┤
//	│                                                                 │
//	│   caller            resilience.Core            External       │
//	│   ┌──────┐        ┌───────────────┐           ┌─────────┐     │
//	│   │ code │───────▶│    Execute     │──────────▶│ Service │     │
//	│   └──────┘        │                │           │  (API)  │     │
//	│                    │ ┌────────────┐ │           └─────────┘     │
//	│                    │ │   Retry    │ │                           │
//	│                    │ ├────────────┤ │                           │
//	│                    │ │  Circuit   │ │                           │
//	│                    │ ├────────────┤ │                           │
//	│                    │ │  Timeout   │ │                           │
//	│                    │ ├────────────┤ │                           │
//	│                    │ │ [Bulkhead] │ │                           │
//	│                    │ ├────────────┤ │                           │
//	│                    │ │ RateLimit  │ │                           │
//	│                    │ └────────────┘ │                           │
//	│                    └───────────────┘                            │
//	│                                                                 │
//	└───────────────────────────────────────────────────────────────┘
//
// # Strategy Packages
//
// Each strategy is its own sibling package, composed by resilience/pipeline:
//
//   - resilience/circuit: window-based circuit breaker (Closed/Open/HalfOpen/Isolated)
//   - resilience/retry: decorrelated-jitter backoff
//   - resilience/timeout: pessimistic per-operation deadline with a grace period
//   - resilience/ratelimit: partitioned token-bucket admission control
//   - resilience/fallback: typed substitute-value generation
//   - resilience/classify: pure fault classification shared by every strategy
//   - resilience/registry: at-most-one-build-per-key pipeline cache
//
// # Quick Start
//
//	core, err := resilience.NewCore(ctx, resilience.CoreConfig{
//	    Source:          resilience.NewFileConfigSource("endpoints.yaml", resolver),
//	    OperationPrefix: "billing",
//	    Observer:        observer,
//	})
//
//	result, err := resilience.Execute(ctx, core, "billing-api", "invoices", http.MethodGet,
//	    callerID, "billing.get-invoice",
//	    func(ctx context.Context) (Invoice, error) {
//	        return client.GetInvoice(ctx, id)
//	    },
//	    resilience.Options[Invoice]{
//	        FallbackGenerator: func(err error) Invoice { return Invoice{} },
//	    })
//
// # Reload
//
// Core.Reload re-reads the ConfigSource and atomically invalidates every
// cached pipeline; in-flight calls finish against their own pipeline
// reference and are unaffected.
//
// # Error Handling
//
// Each strategy returns a sentinel error re-exported at this package's
// level (use errors.Is for checking):
//
//   - [ErrBrokenCircuit]: circuit breaker is open, rejecting requests
//   - [ErrIsolatedCircuit]: circuit breaker is administratively isolated
//   - [ErrTimeoutRejected]: operation exceeded its pipeline deadline
//   - [ErrRateLimitRejected]: rate limiter denied admission
//   - [ErrBulkheadFull]: optional bulkhead layer has no free slot
package resilience
