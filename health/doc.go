// Package health aggregates resilience.CircuitChecker results into a single
// readiness signal, so a host process can fail its readiness probe when a
// dependency's circuit breaker has opened rather than only when the process
// itself is failing.
//
// # Core Components
//
//   - [Checker]: interface for a single named health check (Name/Check)
//   - [CheckerFunc]: adapts an ordinary function to Checker
//   - [Aggregator]: combines multiple Checkers into one composite status
//   - [ReadinessHandler]: HTTP handler running the aggregator for a /readyz probe
//
// # Quick Start
//
//	agg := health.NewAggregator()
//	agg.Register("circuit:movies:search", resilience.NewCircuitChecker(core, "movies", "search", false))
//	mux.HandleFunc("/readyz", health.ReadinessHandler(agg))
//
// resilience.ReadinessHandler wraps this pattern for a set of endpoint/
// resource shards in one call.
//
// # Status Semantics
//
// [Aggregator.OverallStatus] returns StatusUnhealthy if any check is
// unhealthy, StatusDegraded if any check is degraded but none are unhealthy,
// and StatusHealthy otherwise. [ReadinessHandler] maps StatusHealthy and
// StatusDegraded to HTTP 200 (a degraded dependency shouldn't take the whole
// process out of rotation) and StatusUnhealthy to 503.
//
// # Thread Safety
//
// [Aggregator] is safe for concurrent Register/Unregister/Check calls; it
// runs registered checks in parallel by default ([AggregatorConfig].Parallel).
//
// # Error Handling
//
// Sentinel errors (use errors.Is for checking):
//
//   - [ErrCheckTimeout]: a check didn't return before the aggregator's timeout
//   - [ErrCheckerNotFound]: Aggregator.Check was called with an unregistered name
package health
