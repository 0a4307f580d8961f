package resilience

import (
	"fmt"

	"github.com/jonwraymond/depline/resilience/classify"
)

// Sentinel errors re-exported from classify for callers that only import
// the top-level package. errors.Is against these works whether the fault
// originated inside a Pipeline layer or was wrapped by DependencyFault.
var (
	ErrBrokenCircuit     = classify.ErrBrokenCircuit
	ErrIsolatedCircuit   = classify.ErrIsolatedCircuit
	ErrTimeoutRejected   = classify.ErrTimeoutRejected
	ErrRateLimitRejected = classify.ErrRateLimitRejected
	ErrBulkheadFull      = classify.ErrBulkheadFull
	ErrCancelledByCaller = classify.ErrCancelledByCaller
)

// DependencyFault wraps an upstream HTTP response that fell outside the
// success range, carrying enough context to reconstruct a classify.Fault
// without re-parsing the original error.
type DependencyFault struct {
	Endpoint string
	Status   int

	// Method and URI identify the request that drew the response; either
	// may be empty when the caller didn't capture them.
	Method string
	URI    string

	Err error
}

func (e *DependencyFault) Error() string {
	return fmt.Sprintf("depline: %s returned status %d: %v", e.Endpoint, e.Status, e.Err)
}

func (e *DependencyFault) Unwrap() error { return e.Err }

// HTTPStatus lets classify.FromError recognize this as KindHTTPStatus.
func (e *DependencyFault) HTTPStatus() int { return e.Status }

// ConnectionFault wraps a transport-level failure that occurred before any
// response was received (connection refused, DNS failure, premature EOF).
type ConnectionFault struct {
	Endpoint string
	Err      error
}

func (e *ConnectionFault) Error() string {
	return fmt.Sprintf("depline: connecting to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionFault) Unwrap() error { return e.Err }
