// Package fallback implements the fallback strategy: on a classified fault,
// produce a substitute value instead of propagating the error. Unlike the
// other strategies, fallback's op returns a value alongside the error, so
// Execute is generic over that value's type — the only place in depline
// that needs to be, since every other strategy only cares whether op
// failed. The wrapping shape is the same as the other strategies (single
// op call, classify the error, decide what to do with it), generalized to
// Execute[T any].
package fallback

import "context"

// Config configures a typed fallback.
type Config[T any] struct {
	// ShouldHandle decides whether a given error should be substituted.
	// Default: every non-nil error is handled.
	ShouldHandle func(err error) bool

	// Generator produces the substitute value for a handled error.
	// Required.
	Generator func(err error) T

	// OnFallback is called, if set, whenever Generator's value is used
	// in place of the operation's own result.
	OnFallback func(err error)
}

func (c *Config[T]) applyDefaults() {
	if c.ShouldHandle == nil {
		c.ShouldHandle = func(err error) bool { return err != nil }
	}
}

// Execute runs op. If op fails with an error cfg.ShouldHandle accepts, the
// error is swallowed and cfg.Generator's value is returned instead with a
// nil error; any other error propagates unchanged.
func Execute[T any](ctx context.Context, cfg Config[T], op func(context.Context) (T, error)) (T, error) {
	cfg.applyDefaults()

	val, err := op(ctx)
	if err == nil {
		return val, nil
	}
	if !cfg.ShouldHandle(err) {
		return val, err
	}

	if cfg.OnFallback != nil {
		cfg.OnFallback(err)
	}
	return cfg.Generator(err), nil
}
