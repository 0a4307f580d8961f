// Package classify answers two questions about a dependency fault: can the
// circuit breaker count it as a failure, and is it worth retrying. See
// CanCircuitBreak and CanRetry.
package classify
