package resilience

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/embedded"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/depline/observe"
)

// telemetry emits one counter per distinct `polly.<strategy>.<event>.<operationKey>`
// name. OpenTelemetry instrument creation is
// idempotent-by-name but not free, so counters are memoized in a sync.Map
// keyed by the full rendered name. tracer covers the client span around one
// Execute call; it is always non-nil (observe.NewNoopTracer when no Observer
// is configured) so callers never have to branch on it.
type telemetry struct {
	meter    metric.Meter
	logger   observe.Logger
	tracer   observe.Tracer
	counters sync.Map // map[string]metric.Int64Counter
}

func newTelemetry(meter metric.Meter, logger observe.Logger, tracer observe.Tracer) *telemetry {
	return &telemetry{meter: meter, logger: logger, tracer: tracer}
}

// startSpan opens the client span covering one Execute call.
func (t *telemetry) startSpan(ctx context.Context, endpoint, resource string) (context.Context, trace.Span) {
	return t.tracer.StartSpan(ctx, observe.SpanMeta{Endpoint: endpoint, Resource: resource})
}

// endSpan closes span, marking it failed when err is non-nil.
func (t *telemetry) endSpan(span trace.Span, err error) {
	t.tracer.EndSpan(span, err)
}

// event records a single policy event. strategy and event are the
// counter-name segments (e.g. "circuitbreaker", "on-opened");
// operationKey is lower-cased to form "polly.<strategy>.<event>.<operationKey>".
func (t *telemetry) event(ctx context.Context, strategy, event, operationKey string) {
	name := fmt.Sprintf("polly.%s.%s.%s", strategy, event, strings.ToLower(operationKey))

	counter, err := t.counter(name)
	if err != nil {
		if t.logger != nil {
			t.logger.Warn(ctx, "telemetry: failed to create counter",
				observe.Field{Key: "name", Value: name}, observe.Field{Key: "error", Value: err.Error()})
		}
		return
	}
	counter.Add(ctx, 1)
}

func (t *telemetry) counter(name string) (metric.Int64Counter, error) {
	if c, ok := t.counters.Load(name); ok {
		return c.(metric.Int64Counter), nil
	}
	if t.meter == nil {
		return noopCounter{}, nil
	}

	c, err := t.meter.Int64Counter(name, metric.WithDescription("depline resilience pipeline event"))
	if err != nil {
		return nil, err
	}
	actual, _ := t.counters.LoadOrStore(name, c)
	return actual.(metric.Int64Counter), nil
}

// retryAttempt records polly.retry.on-retry.<n>.<operationKey>.
func (t *telemetry) retryAttempt(ctx context.Context, operationKey string, attempt int) {
	t.event(ctx, "retry", fmt.Sprintf("on-retry.%d", attempt), operationKey)
}

func (t *telemetry) timeout(ctx context.Context, operationKey string) {
	t.event(ctx, "timeout", "on-timeout", operationKey)
}

func (t *telemetry) circuitOpened(ctx context.Context, operationKey string) {
	t.event(ctx, "circuitbreaker", "on-opened", operationKey)
}

func (t *telemetry) circuitClosed(ctx context.Context, operationKey string) {
	t.event(ctx, "circuitbreaker", "on-closed", operationKey)
}

func (t *telemetry) rateLimitRejected(ctx context.Context, operationKey string) {
	t.event(ctx, "ratelimiter", "on-rate-limiter-rejected", operationKey)
}

func (t *telemetry) fallbackUsed(ctx context.Context, operationKey string) {
	t.event(ctx, "fallback", "on-fallback", operationKey)
}

// noopCounter satisfies metric.Int64Counter for a Core built without an
// observe.Observer (e.g. in tests).
type noopCounter struct{ embedded.Int64Counter }

func (noopCounter) Add(context.Context, int64, ...metric.AddOption) {}
