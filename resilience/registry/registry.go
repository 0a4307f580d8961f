// Package registry caches one *pipeline.Pipeline per (endpoint, resource,
// handlesExecutionFaults) key, building each shard at most once even under
// concurrent first access. Registry keys are built from three bounded
// primitives rather than arbitrary input, so Key.String formats them
// directly instead of hashing. At-most-once construction uses
// golang.org/x/sync/singleflight.
package registry

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/depline/resilience/pipeline"
)

// Key identifies one pipeline shard.
type Key struct {
	Endpoint               string
	Resource               string
	HandlesExecutionFaults bool
}

// String renders a deterministic key, stable across process runs, used both
// as the internal map key and as the singleflight call key.
func (k Key) String() string {
	return fmt.Sprintf("registry:%s:%s:%t", k.Endpoint, k.Resource, k.HandlesExecutionFaults)
}

// Builder constructs the pipeline for a Key on first access. Implementations
// normally read endpoint configuration and call pipeline.New.
type Builder func(key Key) (*pipeline.Pipeline, error)

// Registry is the at-most-one-build-per-key pipeline cache for an entire
// depline Core.
type Registry struct {
	build Builder

	mu    sync.RWMutex
	gen   uint64
	group singleflight.Group

	entries map[uint64]map[Key]*pipeline.Pipeline
}

// New creates a Registry backed by build.
func New(build Builder) *Registry {
	return &Registry{
		build:   build,
		entries: map[uint64]map[Key]*pipeline.Pipeline{0: {}},
	}
}

// Get returns the pipeline for key, building it via Builder at most once.
// Two goroutines racing on the same unseen key block on a single underlying
// build, per golang.org/x/sync/singleflight's contract.
func (r *Registry) Get(key Key) (*pipeline.Pipeline, error) {
	gen := atomic.LoadUint64(&r.gen)

	r.mu.RLock()
	if p, ok := r.entries[gen][key]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	sfKey := fmt.Sprintf("%d:%s", gen, key)
	v, err, _ := r.group.Do(sfKey, func() (any, error) {
		r.mu.RLock()
		if p, ok := r.entries[gen][key]; ok {
			r.mu.RUnlock()
			return p, nil
		}
		r.mu.RUnlock()

		p, err := r.build(key)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		if r.entries[gen] == nil {
			r.entries[gen] = make(map[Key]*pipeline.Pipeline)
		}
		r.entries[gen][key] = p
		r.mu.Unlock()

		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pipeline.Pipeline), nil
}

// Clear invalidates every cached pipeline by advancing the generation
// counter. In-flight Get calls against the old generation still complete
// normally; every call after Clear returns builds fresh shards via Builder.
// This is an atomic swap rather than a destructive map wipe so Reload never
// observes a half-cleared registry.
func (r *Registry) Clear() {
	newGen := atomic.AddUint64(&r.gen, 1)

	r.mu.Lock()
	r.entries[newGen] = make(map[Key]*pipeline.Pipeline)
	for gen := range r.entries {
		if gen != newGen && gen != newGen-1 {
			delete(r.entries, gen)
		}
	}
	r.mu.Unlock()
}

// Len reports the number of built shards in the current generation.
func (r *Registry) Len() int {
	gen := atomic.LoadUint64(&r.gen)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[gen])
}
