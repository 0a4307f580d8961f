package resilience

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/depline/observe"
	"github.com/jonwraymond/depline/resilience/circuit"
	"github.com/jonwraymond/depline/resilience/pipeline"
	"github.com/jonwraymond/depline/resilience/ratelimit"
	"github.com/jonwraymond/depline/resilience/registry"
	"github.com/jonwraymond/depline/resilience/retry"
	"github.com/jonwraymond/depline/resilience/timeout"
)

// CoreConfig configures a Core.
type CoreConfig struct {
	// Source supplies EndpointConfig snapshots on Reload.
	Source ConfigSource

	// OperationPrefix is prepended to every operation key to form
	// "<OperationPrefix>.<operationName>".
	OperationPrefix string

	// Observer provides the metrics meter and logger telemetry.go uses.
	// May be nil, in which case telemetry events are recorded as no-ops.
	Observer observe.Observer
}

// Core is the single long-lived resilience service: it owns
// the registry, the shared rate limiter, and the administrative isolation
// set, and is the one value whose lifetime spans the host process.
// Reload is the only operation that crosses all three substructures.
type Core struct {
	operationPrefix string
	source          ConfigSource
	limiter         *ratelimit.Limiter
	registry        *registry.Registry
	telemetry       *telemetry

	mu       sync.RWMutex
	configs  map[string]EndpointConfig
	isolated map[string]bool
}

// NewCore builds a Core and performs an initial Reload against cfg.Source,
// if set.
func NewCore(ctx context.Context, cfg CoreConfig) (*Core, error) {
	var meter metric.Meter
	var logger observe.Logger
	tracer := observe.NewNoopTracer()
	if cfg.Observer != nil {
		meter = cfg.Observer.Meter()
		logger = cfg.Observer.Logger()
		tracer = observe.NewTracer(cfg.Observer.Tracer())
	}

	c := &Core{
		operationPrefix: cfg.OperationPrefix,
		source:          cfg.Source,
		limiter:         ratelimit.NewLimiter(),
		configs:         make(map[string]EndpointConfig),
		isolated:        make(map[string]bool),
		telemetry:       newTelemetry(meter, logger, tracer),
	}
	c.registry = registry.New(c.build)

	if cfg.Source != nil {
		if err := c.Reload(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// build constructs the Pipeline for a registry.Key, reading the endpoint's
// current EndpointConfig and folding in administrative isolation.
func (c *Core) build(key registry.Key) (*pipeline.Pipeline, error) {
	c.mu.RLock()
	cfg, ok := c.configs[key.Endpoint]
	isolate := c.isolated[key.Endpoint]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("depline: unknown endpoint %q", key.Endpoint)
	}

	shardLogger := c.telemetry.logger
	if shardLogger != nil {
		shardLogger = shardLogger.WithOperation(key.Endpoint, key.Resource)
	}

	return pipeline.New(pipeline.Config{
		Endpoint: key.Endpoint,
		Retry: retry.Config{
			MaxAttempts: cfg.Retries + 1,
			DelaySeed:   cfg.RetryDelaySeed,
			DelayMax:    cfg.RetryDelayMaximum,
		},
		Circuit: circuit.Config{
			FailureThreshold:         cfg.FailureThreshold,
			FailureSamplingDuration:  cfg.FailureSamplingDuration,
			FailureMinimumThroughput: cfg.FailureMinimumThroughput,
			FailureBreakDuration:     cfg.FailureBreakDuration,
			Isolate:                  cfg.Isolate || isolate,
			OnStateChange:            c.onCircuitStateChange(key.Endpoint + "." + key.Resource),
		},
		Timeout: timeout.Config{
			Timeout: cfg.Timeout,
			Logger:  shardLogger,
		},
		RateLimit: pipeline.RateLimitConfig{Rate: cfg.RateLimit, Period: cfg.RateLimitPeriod},
	}, c.limiter), nil
}

func (c *Core) onCircuitStateChange(operationKey string) func(from, to circuit.State) {
	return func(from, to circuit.State) {
		switch to {
		case circuit.StateOpen:
			c.telemetry.circuitOpened(context.Background(), operationKey)
		case circuit.StateClosed:
			c.telemetry.circuitClosed(context.Background(), operationKey)
		}
	}
}

// Reload refreshes every EndpointConfig from Source and atomically
// invalidates every cached pipeline: in-flight
// executions hold their own pipeline reference from before the reload and
// are unaffected. Administrative isolation flags set via Isolate survive a
// Reload; only Clear semantics from a fresh EndpointConfig.Isolate=false
// combined with an explicit ClearIsolation call drop them.
func (c *Core) Reload(ctx context.Context) error {
	if c.source == nil {
		return fmt.Errorf("depline: Core has no ConfigSource to reload from")
	}

	snapshot, err := c.source.Snapshot()
	if err != nil {
		return fmt.Errorf("depline: reload failed: %w", err)
	}

	c.mu.Lock()
	c.configs = snapshot
	c.mu.Unlock()

	c.registry.Clear()
	c.limiter.Clear()
	return nil
}

// Isolate administratively forces endpoint's circuit breakers into the
// Isolated state until ClearIsolation is called. It invalidates the
// registry immediately, so the next Get for any resource under endpoint
// rebuilds its pipeline with Isolate folded into circuit.Config.
func (c *Core) Isolate(endpoint string) {
	c.mu.Lock()
	c.isolated[endpoint] = true
	c.mu.Unlock()
	c.registry.Clear()
}

// ClearIsolation removes endpoint's administrative isolation flag. The
// circuit returns to Closed on the next rebuild, not immediately.
func (c *Core) ClearIsolation(endpoint string) {
	c.mu.Lock()
	delete(c.isolated, endpoint)
	c.mu.Unlock()
	c.registry.Clear()
}

// qualifiedKey prepends the configured OperationPrefix to an operation
// name, forming the full "<OperationPrefix>.<operationName>" key used for
// metrics and log correlation. With no prefix the name passes through.
func (c *Core) qualifiedKey(operationName string) string {
	if c.operationPrefix == "" {
		return operationName
	}
	return c.operationPrefix + "." + operationName
}

// Endpoint returns the current EndpointConfig for name, or false if unknown.
func (c *Core) Endpoint(name string) (EndpointConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.configs[name]
	return cfg, ok
}
