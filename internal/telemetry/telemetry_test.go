package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupExportsComponentSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	ctx := context.Background()
	exp := tracetest.NewInMemoryExporter()

	shutdown, err := Setup(ctx, Options{Mode: "serve", Exporter: exp})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	t.Cleanup(func() {
		_ = shutdown(ctx)
		otel.SetTracerProvider(prev)
	})

	_, span := Tracer("session").Start(ctx, "session.dispatch")
	span.SetAttributes(attribute.String("command", "guess"))
	span.End()

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Name != "session.dispatch" || s.InstrumentationScope.Name != "wordman/session" {
		t.Errorf("span = %q scope %q", s.Name, s.InstrumentationScope.Name)
	}

	tests := []struct {
		key  attribute.Key
		want string
	}{
		{"service.name", "wordman"},
		{"wordman.mode", "serve"},
	}
	for _, tt := range tests {
		v, ok := s.Resource.Set().Value(tt.key)
		if !ok || v.AsString() != tt.want {
			t.Errorf("resource %s = %q (present %v), want %q", tt.key, v.AsString(), ok, tt.want)
		}
	}
}
