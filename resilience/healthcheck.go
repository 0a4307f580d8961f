package resilience

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonwraymond/depline/health"
	"github.com/jonwraymond/depline/resilience/circuit"
	"github.com/jonwraymond/depline/resilience/registry"
)

// CircuitChecker reports an endpoint's resource shard circuit state as a
// health.Checker, so a host process's readiness aggregator can degrade when
// a dependency's breaker has opened rather than only when the process
// itself is failing.
type CircuitChecker struct {
	core                   *Core
	endpoint               string
	resource               string
	handlesExecutionFaults bool
}

// NewCircuitChecker builds a health.Checker for one (endpoint, resource)
// pipeline shard. handlesExecutionFaults must match the value callers pass
// to Execute for this shard, since that flag is part of the registry key.
func NewCircuitChecker(core *Core, endpoint, resource string, handlesExecutionFaults bool) *CircuitChecker {
	return &CircuitChecker{core: core, endpoint: endpoint, resource: resource, handlesExecutionFaults: handlesExecutionFaults}
}

func (c *CircuitChecker) Name() string {
	return fmt.Sprintf("circuit:%s:%s", c.endpoint, c.resource)
}

func (c *CircuitChecker) Check(ctx context.Context) health.Result {
	p, err := c.core.registry.Get(registry.Key{
		Endpoint:               c.endpoint,
		Resource:               c.resource,
		HandlesExecutionFaults: c.handlesExecutionFaults,
	})
	if err != nil {
		return health.Unhealthy("failed to resolve pipeline", err)
	}

	switch p.State() {
	case circuit.StateClosed:
		return health.Healthy("circuit closed")
	case circuit.StateHalfOpen:
		return health.Degraded("circuit half-open, probing")
	case circuit.StateOpen:
		return health.Unhealthy("circuit open", nil)
	case circuit.StateIsolated:
		return health.Unhealthy("circuit administratively isolated", nil)
	default:
		return health.Unhealthy("unknown circuit state", nil)
	}
}

// Shard names one (endpoint, resource) pipeline whose circuit state should
// feed a process's readiness probe.
type Shard struct {
	Endpoint               string
	Resource               string
	HandlesExecutionFaults bool
}

// ReadinessHandler builds a health.Aggregator with one CircuitChecker per
// shard and returns the resulting /readyz handler, so a host process can
// wire its whole dependency surface into readiness with one call instead of
// registering each shard's checker by hand.
func ReadinessHandler(core *Core, shards []Shard) http.HandlerFunc {
	agg := health.NewAggregator()
	for _, s := range shards {
		checker := NewCircuitChecker(core, s.Endpoint, s.Resource, s.HandlesExecutionFaults)
		agg.Register(checker.Name(), checker)
	}
	return health.ReadinessHandler(agg)
}
