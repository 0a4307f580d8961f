// Package circuit implements the window-based circuit breaker strategy:
// Closed -> Open -> HalfOpen -> Closed, plus an administrative Isolated
// state. Failure accounting uses a rolling sampling window with a minimum
// throughput gate rather than a consecutive-failure counter.
//
// One Breaker instance guards a single (endpoint, resource) shard; sharding
// across resources is the registry package's job, not this one's.
package circuit

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/depline/resilience/classify"
)

// State is the circuit breaker's current admission state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
	StateIsolated
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	case StateIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// Config configures a Breaker. Zero values fall back to the defaults noted
// per field.
type Config struct {
	// FailureThreshold is the failed-fraction (0..1) that opens the
	// circuit once FailureMinimumThroughput is reached. Default: 0.5.
	FailureThreshold float64

	// FailureSamplingDuration is the rolling window over which the
	// failure fraction is evaluated. Default: 30s.
	FailureSamplingDuration time.Duration

	// FailureMinimumThroughput is the minimum number of calls in the
	// window before the threshold is evaluated at all. Default: 2.
	FailureMinimumThroughput int

	// FailureBreakDuration is how long the circuit stays Open before
	// trying a HalfOpen probe. Default: 30s.
	FailureBreakDuration time.Duration

	// Isolate, when true, starts (and keeps) the breaker in StateIsolated
	// until Reset is called with isolate=false.
	Isolate bool

	// OnStateChange is called, with the breaker's lock held, on every state
	// transition; a callback that calls back into the same Breaker deadlocks.
	OnStateChange func(from, to State)

	// IsFailure is the default failure classifier used when Execute is
	// called without one. Default: classify.CanCircuitBreak over a fault
	// built from the plain error (method/caller-context unknown).
	IsFailure func(err error) bool
}

func (c *Config) applyDefaults() {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 0.5
	}
	if c.FailureSamplingDuration <= 0 {
		c.FailureSamplingDuration = 30 * time.Second
	}
	if c.FailureMinimumThroughput <= 0 {
		c.FailureMinimumThroughput = 2
	}
	if c.FailureBreakDuration <= 0 {
		c.FailureBreakDuration = 30 * time.Second
	}
	if c.IsFailure == nil {
		c.IsFailure = func(err error) bool {
			if err == nil {
				return false
			}
			return classify.CanCircuitBreak(classify.FromError(err, "", nil))
		}
	}
}

// Breaker is a single-shard window-based circuit breaker.
type Breaker struct {
	cfg Config

	mu               sync.Mutex
	state            State
	windowStart      time.Time
	total            int
	failed           int
	openedAt         time.Time
	halfOpenInFlight bool
}

// New creates a Breaker. If cfg.Isolate is true the breaker starts isolated.
func New(cfg Config) *Breaker {
	cfg.applyDefaults()

	b := &Breaker{cfg: cfg, windowStart: time.Now()}
	if cfg.Isolate {
		b.state = StateIsolated
	} else {
		b.state = StateClosed
	}
	return b
}

// State returns the current state, resolving an elapsed Open->HalfOpen
// transition as a side effect.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked()
}

// Execute runs op through the breaker. isFailure classifies op's error; if
// nil, cfg.IsFailure is used. Passing a per-call isFailure lets the
// pipeline build a classify.Fault with the caller's context available (for
// the cancellation-origin distinction CanCircuitBreak needs).
func (b *Breaker) Execute(ctx context.Context, isFailure func(error) bool, op func(context.Context) error) error {
	if isFailure == nil {
		isFailure = b.cfg.IsFailure
	}

	if err := b.beforeRequest(); err != nil {
		return err
	}

	err := op(ctx)
	b.afterRequest(isFailure(err))
	return err
}

func (b *Breaker) beforeRequest() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateIsolated:
		return classify.ErrIsolatedCircuit
	case StateOpen:
		return classify.ErrBrokenCircuit
	case StateHalfOpen:
		if b.halfOpenInFlight {
			return classify.ErrBrokenCircuit
		}
		b.halfOpenInFlight = true
	}
	return nil
}

func (b *Breaker) afterRequest(isFailure bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldState := b.state

	switch b.state {
	case StateHalfOpen:
		b.halfOpenInFlight = false
		if isFailure {
			b.openLocked()
		} else {
			b.closeLocked()
		}

	case StateClosed:
		b.recordWindowLocked(isFailure)
		if b.total >= b.cfg.FailureMinimumThroughput &&
			float64(b.failed)/float64(b.total) >= b.cfg.FailureThreshold {
			b.openLocked()
		}
	}

	if oldState != b.state {
		b.notify(oldState, b.state)
	}
}

// recordWindowLocked rolls the sampling window: once FailureSamplingDuration
// has elapsed since windowStart, counts reset for a fresh window before the
// current outcome is recorded. This approximates a continuously rolling
// FailureSamplingDuration with a tumbling window.
func (b *Breaker) recordWindowLocked(isFailure bool) {
	if time.Since(b.windowStart) > b.cfg.FailureSamplingDuration {
		b.windowStart = time.Now()
		b.total = 0
		b.failed = 0
	}
	b.total++
	if isFailure {
		b.failed++
	}
}

func (b *Breaker) openLocked() {
	b.state = StateOpen
	b.openedAt = time.Now()
	b.halfOpenInFlight = false
}

func (b *Breaker) closeLocked() {
	b.state = StateClosed
	b.total = 0
	b.failed = 0
	b.windowStart = time.Now()
}

func (b *Breaker) currentStateLocked() State {
	if b.state == StateOpen && time.Since(b.openedAt) >= b.cfg.FailureBreakDuration {
		b.state = StateHalfOpen
		b.halfOpenInFlight = false
		b.notify(StateOpen, StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) notify(from, to State) {
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

// Isolate administratively forces the breaker into StateIsolated until
// Reset(false) is called. Surfaces ErrIsolatedCircuit for every execution
// in the meantime.
func (b *Breaker) Isolate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.state
	b.state = StateIsolated
	if old != StateIsolated {
		b.notify(old, StateIsolated)
	}
}

// Reset clears isolation and failure statistics. Passing isolate=true
// re-isolates the breaker (used when a config reload still specifies
// Isolate=true); isolate=false returns the breaker to StateClosed.
func (b *Breaker) Reset(isolate bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.state
	b.total = 0
	b.failed = 0
	b.windowStart = time.Now()
	b.halfOpenInFlight = false

	if isolate {
		b.state = StateIsolated
	} else {
		b.state = StateClosed
	}

	if old != b.state {
		b.notify(old, b.state)
	}
}

// Metrics reports a snapshot of the current window for observability.
type Metrics struct {
	State  State
	Total  int
	Failed int
}

// Metrics returns the breaker's current window counters.
func (b *Breaker) Metrics() Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Metrics{State: b.currentStateLocked(), Total: b.total, Failed: b.failed}
}
