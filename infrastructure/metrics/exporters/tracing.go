package exporters

import (
	"context"
	"runtime"
	"strings"

	"github.com/hilthontt/roomly/infrastructure/config"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	defaultJaegerEndpoint = "http://localhost:14268/api/traces"
	defaultOtlpEndpoint   = "localhost:4318"
	defaultAppName        = "roomly-api"

	ExporterJaeger = "jaeger"
	ExporterOtlp   = "otlp"
)

func newSpanExporter(ctx context.Context, cfg config.JaegerConfig) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(cfg.Exporter) {
	case ExporterOtlp:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = defaultOtlpEndpoint
		}
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
	case "", ExporterJaeger:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = defaultJaegerEndpoint
		}
		return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
	default:
		return nil, errors.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
}

// InitTracerProvider installs a global tracer provider exporting through the
// configured backend.
func InitTracerProvider(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, error) {
	if cfg.Jaeger.ServiceName == "" {
		cfg.Jaeger.ServiceName = defaultAppName
	}
	if cfg.Jaeger.ServiceVersion == "" {
		cfg.Jaeger.ServiceVersion = "unknown"
	}

	exp, err := newSpanExporter(ctx, cfg.Jaeger)
	if err != nil {
		return nil, errors.Wrap(err, "span exporter")
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.Jaeger.ServiceName),
			semconv.ServiceVersion(cfg.Jaeger.ServiceVersion),
			attribute.String("go.version", runtime.Version()),
			attribute.String("os", runtime.GOOS),
			attribute.String("arch", runtime.GOARCH),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "trace resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}
