// Package cache provides the deterministic key-value store that backs
// depline's stale-if-error fallback: resilience.StaleCache remembers every
// successful dependency response and serves the last good value back when
// the pipeline ultimately fails.
//
// # Core Components
//
//   - [Cache]: interface for storing/retrieving opaque byte values (Get/Set/Delete)
//   - [MemoryCache]: thread-safe in-memory implementation with TTL support
//   - [Keyer]: interface for deterministic cache key generation
//   - [DefaultKeyer]: SHA-256 based keyer over canonical JSON serialization
//   - [Policy]: configures TTL defaults and maximums
//
// # Key Generation
//
// The [DefaultKeyer] generates deterministic cache keys using:
//
//	cache:<id>:<hash>
//
// Where hash is the first 16 hex characters of SHA-256(canonical JSON(input)).
// Canonical JSON ensures map keys are sorted for deterministic serialization.
// resilience.StaleCache keys entries by operationKey alone (a nil input) and
// stores the typed result marshaled to JSON as the cached value.
//
// # TTL Policies
//
// The [Policy] type controls caching behavior:
//
//   - DefaultTTL: applied when no specific TTL is provided
//   - MaxTTL: upper bound for any TTL (prevents an unbounded stale window)
//
// Preset policies:
//
//   - [DefaultPolicy]: 5 minute default, 1 hour max
//   - [NoCachePolicy]: disabled (0 TTL)
//
// # Thread Safety
//
// All exported types are safe for concurrent use:
//
//   - [MemoryCache]: sync.RWMutex protects all operations
//   - [DefaultKeyer]: stateless, concurrent-safe
//   - [Policy]: immutable struct, concurrent-safe
//
// # Error Handling
//
// Sentinel errors (use errors.Is for checking):
//
//   - [ErrNilCache]: cache is nil
//   - [ErrInvalidKey]: key is empty, whitespace-only, or contains newlines
//   - [ErrKeyTooLong]: key exceeds MaxKeyLength (512 characters)
//
// Note: Cache.Get never returns errors - it returns (nil, false) on miss.
// Key validation is performed via [ValidateKey] function.
package cache
