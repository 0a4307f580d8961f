// Package ratelimit implements the partitioned token-bucket rate-limit
// strategy: one bucket per (endpoint, partition) pair, created lazily and
// evicted after sitting idle for 2x its configured period (a sliding
// expiration, not a fixed TTL: every admission check refreshes the idle
// clock, and a background sweeper reclaims buckets that go quiet).
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/depline/resilience/classify"
)

// Key identifies a single token bucket.
type Key struct {
	Endpoint  string
	Partition string
}

// Limiter manages the full set of partitioned buckets for every endpoint
// sharing this Limiter instance. A depline Core owns exactly one Limiter.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[Key]*bucket

	sweepInterval time.Duration
	stop          chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a Limiter and starts its background idle-bucket
// sweeper. Call Close to stop the sweeper when the Limiter is no longer
// needed (normally for the lifetime of the process, mirrored by Core).
func NewLimiter() *Limiter {
	l := &Limiter{
		buckets:       make(map[Key]*bucket),
		sweepInterval: 30 * time.Second,
		stop:          make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow performs a non-blocking admission check for (endpoint, partition).
// rate<=0 disables rate limiting entirely for this call (the strategy is a
// no-op). period is the replenishment window; capacity and
// refill rate are both derived from rate (rate tokens per period).
func (l *Limiter) Allow(endpoint, partition string, rate float64, period time.Duration) bool {
	if rate <= 0 {
		return true
	}
	if period <= 0 {
		period = time.Second
	}

	key := Key{Endpoint: endpoint, Partition: partition}
	b := l.getOrCreate(key, rate, period)
	return b.allow()
}

// Execute runs op if the partition admits a token, or fails fast with
// classify.ErrRateLimitRejected without invoking op at all.
func (l *Limiter) Execute(ctx context.Context, endpoint, partition string, rate float64, period time.Duration, op func(context.Context) error) error {
	if !l.Allow(endpoint, partition, rate, period) {
		return classify.ErrRateLimitRejected
	}
	return op(ctx)
}

func (l *Limiter) getOrCreate(key Key, rate float64, period time.Duration) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	refillPerSec := rate / period.Seconds()
	b = newBucket(rate, refillPerSec, period)
	l.buckets[key] = b
	return b
}

// Clear drops every bucket, giving every partition a fresh start. Depline's
// Core calls this from Reload so a configuration change that alters
// RateLimit/RateLimitPeriod takes effect immediately rather than blending
// old and new refill rates inside a stale bucket.
func (l *Limiter) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets = make(map[Key]*bucket)
}

// Close stops the background sweeper. Safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	now := time.Now()

	l.mu.RLock()
	stale := make([]Key, 0)
	for key, b := range l.buckets {
		if b.idleSince(now) >= b.idleThreshold() {
			stale = append(stale, key)
		}
	}
	l.mu.RUnlock()

	if len(stale) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range stale {
		if b, ok := l.buckets[key]; ok && b.idleSince(now) >= b.idleThreshold() {
			delete(l.buckets, key)
		}
	}
}

// Len reports the number of live buckets. Used by tests and diagnostics.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}
