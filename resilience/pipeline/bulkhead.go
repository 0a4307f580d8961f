package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/depline/resilience/classify"
)

// BulkheadConfig bounds the number of concurrent executions a pipeline will
// admit: channel-as-semaphore admission with an optional MaxWait for a free
// slot. It is a nested, optional pipeline layer rather than a standalone
// strategy; most endpoints run without one.
type BulkheadConfig struct {
	// MaxConcurrent is the number of concurrent executions admitted.
	MaxConcurrent int

	// MaxWait bounds how long Execute waits for a free slot before
	// rejecting. Zero means fail immediately when no slot is free.
	MaxWait time.Duration
}

type bulkhead struct {
	cfg BulkheadConfig
	sem chan struct{}

	mu        sync.Mutex
	active    int
	maxActive int
	rejected  int64
}

func newBulkhead(cfg *BulkheadConfig) *bulkhead {
	if cfg == nil {
		return nil
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &bulkhead{cfg: *cfg, sem: make(chan struct{}, maxConcurrent)}
}

func (b *bulkhead) acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		b.trackAcquire()
		return nil
	default:
	}

	if b.cfg.MaxWait <= 0 {
		b.mu.Lock()
		b.rejected++
		b.mu.Unlock()
		return classify.ErrBulkheadFull
	}

	timer := time.NewTimer(b.cfg.MaxWait)
	defer timer.Stop()

	select {
	case b.sem <- struct{}{}:
		b.trackAcquire()
		return nil
	case <-timer.C:
		b.mu.Lock()
		b.rejected++
		b.mu.Unlock()
		return classify.ErrBulkheadFull
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *bulkhead) trackAcquire() {
	b.mu.Lock()
	b.active++
	if b.active > b.maxActive {
		b.maxActive = b.active
	}
	b.mu.Unlock()
}

func (b *bulkhead) release() {
	select {
	case <-b.sem:
		b.mu.Lock()
		b.active--
		b.mu.Unlock()
	default:
	}
}

func (b *bulkhead) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.acquire(ctx); err != nil {
		return err
	}
	defer b.release()
	return op(ctx)
}

// BulkheadMetrics reports current bulkhead occupancy.
type BulkheadMetrics struct {
	Active        int
	MaxActive     int
	MaxConcurrent int
	Rejected      int64
}

func (b *bulkhead) Metrics() BulkheadMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	maxConcurrent := b.cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = cap(b.sem)
	}
	return BulkheadMetrics{
		Active:        b.active,
		MaxActive:     b.maxActive,
		MaxConcurrent: maxConcurrent,
		Rejected:      b.rejected,
	}
}
