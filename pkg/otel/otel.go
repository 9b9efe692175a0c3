// Package otel wires OpenTelemetry tracing for the service and provides the
// small span helpers the handlers use.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"orderdesk/pkg/logger"
)

type ctxKey int

const tracerKey ctxKey = 1

// Config holds the tracing settings.
type Config struct {
	ServiceName string
	Host        string
	Probability float64
}

// InitTracing configures the global tracer provider. Spans are exported over
// OTLP gRPC when cfg.Host is set, to stdout otherwise. The returned function
// shuts the provider down.
func InitTracing(log *logger.Logger, cfg Config) (*sdktrace.TracerProvider, func(context.Context), error) {
	var exp sdktrace.SpanExporter
	var err error
	if cfg.Host != "" {
		exp, err = otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.Host),
		)
	} else {
		exp, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.Probability)),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)

	shutdown := func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			log.Error(ctx, "tracer provider shutdown", "error", err)
		}
	}
	return tp, shutdown, nil
}

// InjectTracing stores the tracer in the context so AddSpan can start child
// spans from deep in the call stack. Used by the tracing middleware.
func InjectTracing(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// AddSpan starts a child span named name. When no tracer was injected the
// current span is returned unchanged so call sites need no nil checks.
func AddSpan(ctx context.Context, name string, kv ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer, ok := ctx.Value(tracerKey).(trace.Tracer)
	if !ok || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(kv...)
	return ctx, span
}

// GetTraceID returns the current trace id, or "" outside a recorded trace.
func GetTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
