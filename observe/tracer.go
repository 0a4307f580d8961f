package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// SpanMeta identifies the dependency call a span covers.
type SpanMeta struct {
	Endpoint string // Dependency endpoint name (required)
	Resource string // Resource/operation within the endpoint (optional)
}

// SpanName returns the deterministic span name for this call.
// Format: depline.execute.<endpoint>.<resource> or depline.execute.<endpoint>
func (m SpanMeta) SpanName() string {
	if m.Resource != "" {
		return "depline.execute." + m.Endpoint + "." + m.Resource
	}
	return "depline.execute." + m.Endpoint
}

// Tracer wraps OpenTelemetry tracing with span management scoped to one
// dependency call.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan derives the span's context from ctx; it returns no error and does not check ctx for cancellation.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a dependency call.
	StartSpan(ctx context.Context, meta SpanMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with call metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta SpanMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("depline.endpoint", meta.Endpoint),
		attribute.Bool("depline.error", false), // Will be updated in EndSpan if error
	}
	if meta.Resource != "" {
		attrs = append(attrs, attribute.String("depline.resource", meta.Resource))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("depline.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer, for a Core built without an
// observe.Observer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta SpanMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
