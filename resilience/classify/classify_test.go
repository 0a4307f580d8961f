package classify

import (
	"context"
	"errors"
	"testing"
)

func TestCanCircuitBreak(t *testing.T) {
	tests := []struct {
		name string
		f    Fault
		want bool
	}{
		{"5xx status", Fault{Kind: KindHTTPStatus, Status: 500}, true},
		{"408 status", Fault{Kind: KindHTTPStatus, Status: 408}, true},
		{"404 status", Fault{Kind: KindHTTPStatus, Status: 404}, false},
		{"connection fault", Fault{Kind: KindConnection}, true},
		{"timeout rejected", Fault{Kind: KindTimeoutRejected}, true},
		{"cancelled by caller", Fault{Kind: KindCancelled, CallerCancelled: true}, false},
		{"cancelled internally", Fault{Kind: KindCancelled, CallerCancelled: false}, true},
		{"rate limit rejected", Fault{Kind: KindRateLimitRejected}, false},
		{"bulkhead full", Fault{Kind: KindBulkheadFull}, true},
		{"unclassified", Fault{Kind: KindUnclassified}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCircuitBreak(tt.f); got != tt.want {
				t.Errorf("CanCircuitBreak(%+v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestCanRetry(t *testing.T) {
	tests := []struct {
		name string
		f    Fault
		want bool
	}{
		{"GET 408", Fault{Kind: KindHTTPStatus, Status: 408, Method: "GET"}, true},
		{"GET 502", Fault{Kind: KindHTTPStatus, Status: 502, Method: "GET"}, true},
		{"GET 503", Fault{Kind: KindHTTPStatus, Status: 503, Method: "GET"}, true},
		{"GET 504", Fault{Kind: KindHTTPStatus, Status: 504, Method: "GET"}, true},
		{"GET 500 not retryable status", Fault{Kind: KindHTTPStatus, Status: 500, Method: "GET"}, false},
		{"POST 408 blocked by idempotency gate", Fault{Kind: KindHTTPStatus, Status: 408, Method: "POST"}, false},
		{"GET cancelled internally", Fault{Kind: KindCancelled, Method: "GET", CallerCancelled: false}, true},
		{"GET cancelled by caller", Fault{Kind: KindCancelled, Method: "GET", CallerCancelled: true}, false},
		{"lowercase get", Fault{Kind: KindHTTPStatus, Status: 503, Method: "get"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRetry(tt.f); got != tt.want {
				t.Errorf("CanRetry(%+v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestShouldFallback(t *testing.T) {
	tests := []struct {
		name                   string
		f                      Fault
		handlesExecutionFaults bool
		want                   bool
	}{
		{"http status always handled", Fault{Kind: KindHTTPStatus, Status: 404}, false, true},
		{"connection fault always handled", Fault{Kind: KindConnection}, false, true},
		{"cancelled always handled", Fault{Kind: KindCancelled, CallerCancelled: true}, false, true},
		{"rate limit never handled", Fault{Kind: KindRateLimitRejected}, true, false},
		{"broken circuit needs handlesExecutionFaults", Fault{Kind: KindBrokenCircuit}, false, false},
		{"broken circuit handled when flag set", Fault{Kind: KindBrokenCircuit}, true, true},
		{"isolated circuit handled when flag set", Fault{Kind: KindIsolatedCircuit}, true, true},
		{"timeout handled when flag set", Fault{Kind: KindTimeoutRejected}, true, true},
		{"timeout not handled without flag", Fault{Kind: KindTimeoutRejected}, false, false},
		{"unclassified never handled", Fault{Kind: KindUnclassified}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldFallback(tt.f, tt.handlesExecutionFaults); got != tt.want {
				t.Errorf("ShouldFallback(%+v, %v) = %v, want %v", tt.f, tt.handlesExecutionFaults, got, tt.want)
			}
		})
	}
}

func TestIsConnectionFault(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"no such host", errors.New("dial tcp: lookup api.example.com: no such host"), true},
		{"premature eof", errors.New("the response ended prematurely"), true},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConnectionFault(tt.err); got != tt.want {
				t.Errorf("IsConnectionFault(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type codedErr struct{ code int }

func (e codedErr) Error() string { return "coded error" }
func (e codedErr) Code() int     { return e.code }

func TestIsConnectionFault_CodedWindowsErrors(t *testing.T) {
	if !IsConnectionFault(codedErr{code: WinInetHostNotFound}) {
		t.Error("expected WinInetHostNotFound code to classify as a connection fault")
	}
	if !IsConnectionFault(codedErr{code: WinInetHostNotFoundHRESULT}) {
		t.Error("expected WinInetHostNotFoundHRESULT code to classify as a connection fault")
	}
	if IsConnectionFault(codedErr{code: 42}) {
		t.Error("unrelated code should not classify as a connection fault")
	}
}

func TestFromError(t *testing.T) {
	t.Run("nil error is unclassified", func(t *testing.T) {
		f := FromError(nil, "GET", context.Background())
		if f.Kind != KindUnclassified {
			t.Errorf("Kind = %v, want KindUnclassified", f.Kind)
		}
	})

	t.Run("bulkhead sentinel", func(t *testing.T) {
		f := FromError(ErrBulkheadFull, "GET", context.Background())
		if f.Kind != KindBulkheadFull {
			t.Errorf("Kind = %v, want KindBulkheadFull", f.Kind)
		}
	})

	t.Run("timeout sentinel", func(t *testing.T) {
		f := FromError(ErrTimeoutRejected, "GET", context.Background())
		if f.Kind != KindTimeoutRejected {
			t.Errorf("Kind = %v, want KindTimeoutRejected", f.Kind)
		}
	})

	t.Run("deadline exceeded maps to timeout", func(t *testing.T) {
		f := FromError(context.DeadlineExceeded, "GET", context.Background())
		if f.Kind != KindTimeoutRejected {
			t.Errorf("Kind = %v, want KindTimeoutRejected", f.Kind)
		}
	})

	t.Run("caller cancellation is tagged", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := FromError(context.Canceled, "GET", ctx)
		if f.Kind != KindCancelled || !f.CallerCancelled {
			t.Errorf("f = %+v, want Kind=KindCancelled CallerCancelled=true", f)
		}
	})

	t.Run("cancellation without caller context is not caller-cancelled", func(t *testing.T) {
		f := FromError(context.Canceled, "GET", context.Background())
		if f.Kind != KindCancelled || f.CallerCancelled {
			t.Errorf("f = %+v, want Kind=KindCancelled CallerCancelled=false", f)
		}
	})

	t.Run("connection fault", func(t *testing.T) {
		f := FromError(errors.New("connection refused"), "GET", context.Background())
		if f.Kind != KindConnection {
			t.Errorf("Kind = %v, want KindConnection", f.Kind)
		}
	})
}
