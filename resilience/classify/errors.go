package classify

import "errors"

// Sentinel faults shared by every strategy. They live here, rather than in
// each strategy's own package, so FromError can recognize them with a plain
// errors.Is without creating an import cycle between strategies.
var (
	// ErrRateLimitRejected is returned when the rate limiter denies
	// admission. It never counts toward circuit failure statistics.
	ErrRateLimitRejected = errors.New("depline: rate limit rejected")

	// ErrBrokenCircuit is returned when the circuit breaker is open.
	ErrBrokenCircuit = errors.New("depline: circuit broken")

	// ErrIsolatedCircuit is returned when the circuit breaker has been
	// administratively isolated.
	ErrIsolatedCircuit = errors.New("depline: circuit isolated")

	// ErrTimeoutRejected is returned when the pipeline timeout fires before
	// the underlying operation completes.
	ErrTimeoutRejected = errors.New("depline: timeout rejected")

	// ErrCancelledByCaller is returned when the caller's own
	// CancellationSignal terminated the execution.
	ErrCancelledByCaller = errors.New("depline: cancelled by caller")

	// ErrBulkheadFull is returned when the optional bulkhead layer has no
	// free slot and MaxWait has elapsed (or is zero).
	ErrBulkheadFull = errors.New("depline: bulkhead full")
)
