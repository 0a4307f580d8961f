// Package classify implements the pure fault-classification predicates that
// every other resilience strategy consults before deciding whether to break,
// retry, or surface a fault verbatim.
//
// Classification never performs I/O and never mutates state; it only looks
// at the shape of a Fault and answers a yes/no question. Keeping it pure
// makes CanCircuitBreak and CanRetry trivial to unit test in isolation from
// timing-sensitive strategies like circuit.Breaker and retry.
package classify

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
)

// Kind categorizes the shape of a dependency fault.
type Kind int

const (
	// KindHTTPStatus means the upstream returned a non-success HTTP response.
	KindHTTPStatus Kind = iota
	// KindConnection means the fault occurred before a response was received.
	KindConnection
	// KindTimeoutRejected means the pipeline's own timeout strategy fired.
	KindTimeoutRejected
	// KindRateLimitRejected means the rate limiter denied admission.
	KindRateLimitRejected
	// KindBrokenCircuit means the circuit breaker is open.
	KindBrokenCircuit
	// KindIsolatedCircuit means the circuit breaker is administratively isolated.
	KindIsolatedCircuit
	// KindBulkheadFull means the optional bulkhead layer had no free slot.
	KindBulkheadFull
	// KindCancelled means the underlying call observed a cancellation signal.
	KindCancelled
	// KindUnclassified is anything else; it surfaces verbatim.
	KindUnclassified
)

// Fault is the classifier's view of a dependency failure. Strategies never
// inspect concrete error types directly; they build a Fault once (via
// FromError) and classify that.
type Fault struct {
	Kind Kind

	// Status is the HTTP status code, or 0 when not applicable.
	Status int

	// Method is the HTTP method of the call that produced this fault. Only
	// GET requests are retry-eligible (the idempotency gate).
	Method string

	// CallerCancelled is true when Kind is KindCancelled and the
	// cancellation originated from the caller's own CancellationSignal,
	// rather than from an internal pipeline-issued cancellation.
	CallerCancelled bool

	// Err is the underlying error, preserved for logging.
	Err error
}

// Windows-specific connection-fault codes carried over from the source
// system for parity; they never occur on non-Windows runtimes but are kept
// as named constants so IsConnectionFault can recognize them if a provider
// ever surfaces them through an error code field (see CodedError).
const (
	// WinInetHostNotFound is ERROR_INTERNET_NAME_NOT_RESOLVED (WinINet).
	WinInetHostNotFound = 12007
	// WinInetHostNotFoundHRESULT is the HRESULT form of the same failure
	// (0x80072EE7 interpreted as a signed 32-bit integer).
	WinInetHostNotFoundHRESULT = -2147012889
)

// CodedError is implemented by errors that carry a provider-specific
// numeric code, such as the Windows connection-fault codes above.
type CodedError interface {
	Code() int
}

// CanCircuitBreak reports whether f should count as a breaker failure.
func CanCircuitBreak(f Fault) bool {
	switch f.Kind {
	case KindHTTPStatus:
		return f.Status >= 500 || f.Status == 408
	case KindConnection, KindTimeoutRejected, KindBulkheadFull:
		return true
	case KindCancelled:
		return !f.CallerCancelled
	default:
		return false
	}
}

// CanRetry reports whether f should trigger a retry attempt. The idempotency
// gate requires the underlying request to be a GET.
func CanRetry(f Fault) bool {
	if !strings.EqualFold(f.Method, "GET") {
		return false
	}
	switch f.Kind {
	case KindHTTPStatus:
		switch f.Status {
		case 408, 502, 503, 504:
			return true
		}
		return false
	case KindCancelled:
		return !f.CallerCancelled
	default:
		return false
	}
}

// ShouldFallback reports whether f is within a fallback strategy's handled
// set. The base set (API errors, connection faults, any cancellation) is
// always handled; handlesExecutionFaults additionally admits the
// infrastructure-admission faults (broken/isolated circuit, pipeline
// timeout). Rate-limit rejections are never handled, regardless of
// handlesExecutionFaults, so callers can always translate them to 429.
func ShouldFallback(f Fault, handlesExecutionFaults bool) bool {
	switch f.Kind {
	case KindHTTPStatus, KindConnection, KindCancelled:
		return true
	case KindBrokenCircuit, KindIsolatedCircuit, KindTimeoutRejected:
		return handlesExecutionFaults
	default:
		return false
	}
}

// connectionFaultSubstrings are matched against an error's message the way
// the source system matches well-known transport failure strings.
var connectionFaultSubstrings = []string{
	"connection refused",
	"no such host",
	"the response ended prematurely",
}

// IsConnectionFault reports whether err represents a transport-level
// failure that occurred before any response was received: connection
// refused, host-not-found (including the OS-specific codes the source
// system recognizes), or a premature end of the response stream.
func IsConnectionFault(err error) bool {
	if err == nil {
		return false
	}

	var coded CodedError
	if errors.As(err, &coded) {
		switch coded.Code() {
		case WinInetHostNotFound, WinInetHostNotFoundHRESULT:
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		msg := strings.ToLower(opErr.Error())
		for _, sub := range connectionFaultSubstrings {
			if strings.Contains(msg, sub) {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	for _, sub := range connectionFaultSubstrings {
		if strings.Contains(msg, sub) {
			return true
		}
	}

	return false
}

// FromError builds a Fault from err, the HTTP method of the request that
// produced it, and callerCtx — the caller's own context, used to decide
// whether a context.Canceled error originated from the caller's
// CancellationSignal (CallerCancelled=true) rather than from an internal
// cancellation the pipeline itself issued.
//
// Sentinel faults (timeout, rate limit, broken/isolated circuit) are
// recognized via errors.Is against the package-level sentinels so that
// wrapped errors classify correctly.
func FromError(err error, method string, callerCtx context.Context) Fault {
	if err == nil {
		return Fault{Kind: KindUnclassified, Method: method}
	}

	fault := Fault{Method: method, Err: err}

	switch {
	case errors.Is(err, ErrTimeoutRejected):
		fault.Kind = KindTimeoutRejected
	case errors.Is(err, ErrRateLimitRejected):
		fault.Kind = KindRateLimitRejected
	case errors.Is(err, ErrBrokenCircuit):
		fault.Kind = KindBrokenCircuit
	case errors.Is(err, ErrIsolatedCircuit):
		fault.Kind = KindIsolatedCircuit
	case errors.Is(err, ErrBulkheadFull):
		fault.Kind = KindBulkheadFull
	case errors.Is(err, context.DeadlineExceeded):
		fault.Kind = KindTimeoutRejected
	case errors.Is(err, context.Canceled):
		fault.Kind = KindCancelled
		fault.CallerCancelled = callerCtx != nil && errors.Is(callerCtx.Err(), context.Canceled)
	case IsConnectionFault(err):
		fault.Kind = KindConnection
	default:
		var statusErr interface{ HTTPStatus() int }
		if errors.As(err, &statusErr) {
			fault.Kind = KindHTTPStatus
			fault.Status = statusErr.HTTPStatus()
		} else {
			fault.Kind = KindUnclassified
		}
	}

	return fault
}
