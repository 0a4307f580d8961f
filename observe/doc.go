// Package observe provides OpenTelemetry-based observability for dependency calls.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. The resilience package wires an Observer into each
// executor call to trace, log, and measure one pipeline run.
//
// # Overview
//
// observe provides three observability pillars:
//   - Tracing: OpenTelemetry spans keyed by the endpoint/resource a call targets
//   - Metrics: a Meter handed to the resilience telemetry layer, which records
//     its own pipeline event counters (see resilience/telemetry.go)
//   - Logging: Structured JSON logging with automatic field redaction
//
// # Core Components
//
//   - [Observer]: Main facade providing Tracer, Meter, and Logger access
//   - [Tracer]: Span creation keyed by [SpanMeta] (endpoint/resource)
//   - [Logger]: Structured JSON logging with sensitive field redaction
//
// # Quick Start
//
//	cfg := observe.Config{
//	    ServiceName: "my-service",
//	    Version:     "1.0.0",
//	    Tracing:     observe.TracingConfig{Enabled: true, Exporter: "otlp", SamplePct: 1.0},
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	}
//
//	obs, err := observe.NewObserver(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer obs.Shutdown(ctx)
//
//	tracer := observe.NewTracer(obs.Tracer())
//	ctx, span := tracer.StartSpan(ctx, observe.SpanMeta{Endpoint: "movies", Resource: "search"})
//	// ... run the dependency call ...
//	tracer.EndSpan(span, err)
//
// # Telemetry Details
//
// Tracing creates spans with deterministic names:
//   - With resource: "depline.execute.<endpoint>.<resource>" (e.g., "depline.execute.movies.search")
//   - Without resource: "depline.execute.<endpoint>" (e.g., "depline.execute.accounts")
//
// Span attributes include:
//   - depline.endpoint: the dependency endpoint name
//   - depline.resource: the resource within the endpoint, if set
//   - depline.error: boolean indicating call failure
//
// # Sensitive Field Redaction
//
// The logger automatically redacts these fields to prevent credential leakage:
//   - input, inputs
//   - password, secret, token
//   - api_key, apiKey, credential
//
// See [RedactedFields] for the complete list.
//
// # Exporter Configuration
//
// Tracing exporters:
//   - "otlp": OTLP gRPC (requires OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_TRACES_ENDPOINT)
//   - "jaeger": Jaeger via OTLP (requires OTEL_EXPORTER_JAEGER_ENDPOINT)
//   - "stdout": Console output for development
//   - "none" or "": Disabled (no-op)
//
// Metrics exporters:
//   - "otlp": OTLP gRPC (requires OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_METRICS_ENDPOINT)
//   - "prometheus": Prometheus scrape endpoint
//   - "stdout": Console output for development
//   - "none" or "": Disabled (no-op)
//
// # Thread Safety
//
// All exported types are safe for concurrent use after construction:
//   - [Observer]: Tracer(), Meter(), Logger() are safe; Shutdown() is idempotent
//   - [Tracer]: StartSpan() and EndSpan() are safe for concurrent use
//   - [Logger]: All logging methods are mutex-protected
//
// # Error Handling
//
// Configuration errors (use errors.Is for checking):
//   - [ErrMissingServiceName]: Config.ServiceName is empty
//   - [ErrInvalidSamplePct]: Tracing.SamplePct not in [0.0, 1.0]
//   - [ErrInvalidTracingExporter]: Unknown tracing exporter name
//   - [ErrInvalidMetricsExporter]: Unknown metrics exporter name
//   - [ErrInvalidLogLevel]: Unknown log level
//
// Exporter errors:
//   - [ErrEndpointNotConfigured]: Required endpoint env var not set
//
// Runtime errors:
//   - [ErrNilObserver]: Nil Observer passed to function
//
// Example error handling:
//
//	obs, err := observe.NewObserver(ctx, cfg)
//	if errors.Is(err, observe.ErrMissingServiceName) {
//	    // Handle missing service name
//	}
//	if errors.Is(err, observe.ErrEndpointNotConfigured) {
//	    // Handle missing OTLP endpoint
//	}
//
// # Integration with depline
//
// A resilience Core takes one Observer through its CoreConfig (it does not
// construct one) and derives a Tracer and a per-shard Logger from it; a Core
// with no configured Observer falls back to [NewNoopTracer] so tracing stays
// optional without branching call sites.
package observe
