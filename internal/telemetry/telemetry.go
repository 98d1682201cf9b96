// Package telemetry wires OpenTelemetry tracing for both front ends.
//
// Spans come from the session manager (one per HTTP command) and the terminal
// app (engine initialization). Nothing is exported unless Setup runs, which
// cmd does only when OTEL_ENABLED is set.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "wordman"
	serviceVersion = "0.1.0"
	scopePrefix    = "wordman/"
)

// Options selects what Setup reports and where spans go.
type Options struct {
	Mode     string                // front end: "serve" or "play"
	Exporter sdktrace.SpanExporter // nil exports over OTLP/HTTP
}

// Setup installs the global tracer provider and returns its shutdown hook.
//
// Without an explicit Exporter, spans are batched to the collector named by
// the standard OTEL_EXPORTER_OTLP_* variables. An explicit exporter gets spans
// synchronously.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("wordman.mode", opts.Mode),
			attribute.String("host.name", hostname()),
			attribute.Int("process.pid", os.Getpid()),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	var export sdktrace.TracerProviderOption
	if opts.Exporter != nil {
		export = sdktrace.WithSyncer(opts.Exporter)
	} else {
		exp, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, err
		}
		export = sdktrace.WithBatcher(exp)
	}

	tp := sdktrace.NewTracerProvider(export, sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Tracer returns the tracer for a wordman component ("session", "tui").
// Tracers taken before Setup start exporting once it runs.
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(scopePrefix + component)
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
