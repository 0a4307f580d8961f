package observe

import (
	"context"
	"testing"
)

func TestObserverContract_Noops(t *testing.T) {
	cfg := Config{
		ServiceName: "observe-test",
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "none",
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Exporter: "none",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if obs.Tracer() == nil {
		t.Fatalf("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Fatalf("expected non-nil meter")
	}
	if obs.Logger() == nil {
		t.Fatalf("expected non-nil logger")
	}
}

func TestLoggerContract_WithOperation(t *testing.T) {
	logger := &noopLogger{}
	if logger.WithOperation("movies", "search") == nil {
		t.Fatalf("WithOperation should return non-nil logger")
	}
}

func TestTracerContract_NoPanic(t *testing.T) {
	tracer := NewNoopTracer()
	ctx := context.Background()
	_, span := tracer.StartSpan(ctx, SpanMeta{Endpoint: "movies"})
	tracer.EndSpan(span, nil)
}
