package resilience

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonwraymond/depline/cache"
)

// StaleCache remembers the last successful result of an Execute call and
// serves it as a fallback substitute when the pipeline later fails,
// implementing a stale-if-error pattern on top of cache.Cache. Keys are
// derived via cache.Keyer, reusing its deterministic hashing instead of
// hand-rolling a second key scheme.
type StaleCache[T any] struct {
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewStaleCache creates a StaleCache backed by c, keyed via keyer, with
// entries held for ttl.
func NewStaleCache[T any](c cache.Cache, keyer cache.Keyer, ttl time.Duration) *StaleCache[T] {
	return &StaleCache[T]{cache: c, keyer: keyer, ttl: ttl}
}

// Remember stores value as the latest known-good result for operationKey.
// Marshal errors are swallowed since a failed remember should never fail
// the call that produced value.
func (s *StaleCache[T]) Remember(ctx context.Context, operationKey string, value T) {
	key, err := s.keyer.Key(operationKey, nil)
	if err != nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, data, s.ttl)
}

// Generator returns a fallback.Generator-compatible function serving the
// last remembered result for operationKey, or the zero value of T on a
// cache miss or decode failure.
func (s *StaleCache[T]) Generator(ctx context.Context, operationKey string) func(err error) T {
	return func(err error) T {
		var zero T
		key, keyErr := s.keyer.Key(operationKey, nil)
		if keyErr != nil {
			return zero
		}
		data, ok := s.cache.Get(ctx, key)
		if !ok {
			return zero
		}
		var value T
		if json.Unmarshal(data, &value) != nil {
			return zero
		}
		return value
	}
}
