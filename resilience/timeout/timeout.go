// Package timeout implements the timeout strategy: context.WithTimeout, a
// buffered done channel, and a select against ctx.Done, with a one-second
// grace period before the context deadline actually fires (pessimistic
// timeout: op gets Timeout to finish on its own, plus a margin, before the
// caller gives up on it) and best-effort logging of whatever the orphaned
// goroutine eventually returns, since nothing else will ever observe it.
package timeout

import (
	"context"
	"time"

	"github.com/jonwraymond/depline/observe"
	"github.com/jonwraymond/depline/resilience/classify"
)

// grace is added to Timeout before the context deadline is armed, so a slow
// but still-completing op is never preempted strictly at its own budget.
const grace = time.Second

// Config configures the timeout wrapper.
type Config struct {
	// Timeout is the budget given to the operation. Default: 30s.
	Timeout time.Duration

	// Logger receives a warning when an operation outlives its deadline
	// and finishes in the background afterward. May be nil.
	Logger observe.Logger
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Timeout wraps operations with a deadline.
type Timeout struct {
	cfg Config
}

// New creates a Timeout wrapper.
func New(cfg Config) *Timeout {
	cfg.applyDefaults()
	return &Timeout{cfg: cfg}
}

// Execute runs op with a deadline of cfg.Timeout+grace. On expiry it returns
// classify.ErrTimeoutRejected immediately without waiting for op; op keeps
// running in the background and, if it eventually returns, its result is
// logged (not propagated) since the caller has already moved on.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	opCtx, cancel := context.WithTimeout(ctx, t.cfg.Timeout+grace)

	done := make(chan error, 1)
	go func() {
		done <- op(opCtx)
	}()

	select {
	case err := <-done:
		cancel()
		return err
	case <-opCtx.Done():
		cancel()
		if opCtx.Err() == context.DeadlineExceeded {
			go t.logOrphan(done)
			return classify.ErrTimeoutRejected
		}
		return opCtx.Err()
	}
}

func (t *Timeout) logOrphan(done <-chan error) {
	err := <-done
	if err != nil && t.cfg.Logger != nil {
		t.cfg.Logger.Warn(context.Background(), "timeout: orphaned operation finished after deadline",
			observe.Field{Key: "error", Value: err.Error()})
	}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() Config {
	return t.cfg
}
