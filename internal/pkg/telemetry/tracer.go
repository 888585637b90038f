// Package telemetry sets up tracing and the trace-aware slog logger.
//
// SetupTracer installs a global TracerProvider and the W3C propagators, so
// spans opened by otelhttp and the use cases share one trace id that also
// appears on every log line written with a request context:
//
//	shutdown := telemetry.SetupTracer("fulfillment")
//	defer shutdown(context.Background())
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc flushes and stops the provider.
type ShutdownFunc func(ctx context.Context) error

// SetupTracer registers the global TracerProvider and TextMapPropagator.
// Spans are sampled with the parent-based default; no exporter is attached,
// trace ids are used for log correlation and propagated to POS and courier calls.
func SetupTracer(serviceName string, opts ...sdktrace.TracerProviderOption) ShutdownFunc {
	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName))
	tp := sdktrace.NewTracerProvider(append([]sdktrace.TracerProviderOption{sdktrace.WithResource(res)}, opts...)...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("telemetry: shut down tracer provider: %w", err)
		}
		return nil
	}
}
