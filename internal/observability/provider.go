package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Providers bundles the tracer and meter constructed by Init, along with a
// Shutdown hook that flushes pending spans/metrics before the process exits.
type Providers struct {
	Tracer   trace.Tracer
	Meter    metric.Meter
	Shutdown func(context.Context) error
}

// Init wires up OTel tracing and metrics per cfg. When cfg.OTLPEndpoint is
// empty, both providers are no-op (no network calls, safe default for `scadast
// parse`/`scadast validate` one-shot CLI invocations).
func Init(cfg Config) (*Providers, error) {
	res, err := buildResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.OTLPEndpoint == "" {
		tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res), sdktrace.WithSampler(selectSampler(cfg)))
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))

		return &Providers{
			Tracer: NewFilteringTracerProvider(tp).Tracer(defaultServiceName),
			Meter:  mp.Meter(defaultServiceName),
			Shutdown: func(ctx context.Context) error {
				if shutdownErr := tp.Shutdown(ctx); shutdownErr != nil {
					return fmt.Errorf("shutdown tracer provider: %w", shutdownErr)
				}

				if shutdownErr := mp.Shutdown(ctx); shutdownErr != nil {
					return fmt.Errorf("shutdown meter provider: %w", shutdownErr)
				}

				return nil
			},
		}, nil
	}

	traceOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithHeaders(cfg.OTLPHeaders),
	}

	metricOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithHeaders(cfg.OTLPHeaders),
	}

	if cfg.OTLPInsecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
	}

	traceExporter, err := otlptracegrpc.New(context.Background(), traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(context.Background(), metricOpts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(selectSampler(cfg)),
		sdktrace.WithBatcher(traceExporter),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
	)

	shutdownTimeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second

	return &Providers{
		Tracer: NewFilteringTracerProvider(tp).Tracer(defaultServiceName),
		Meter:  mp.Meter(defaultServiceName),
		Shutdown: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
				return fmt.Errorf("shutdown tracer provider: %w", shutdownErr)
			}

			if shutdownErr := mp.Shutdown(shutdownCtx); shutdownErr != nil {
				return fmt.Errorf("shutdown meter provider: %w", shutdownErr)
			}

			return nil
		},
	}, nil
}

// buildResource constructs the OTel resource describing this process
// (service name/version, deployment environment).
func buildResource(cfg Config) (*resource.Resource, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
	}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, attribute.String("service.version", cfg.ServiceVersion))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", cfg.Environment))
	}

	if cfg.Mode != "" {
		attrs = append(attrs, attribute.String("scadast.mode", string(cfg.Mode)))
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
	if err != nil {
		return nil, fmt.Errorf("merge resource: %w", err)
	}

	return res, nil
}

// selectSampler resolves the trace sampler from cfg: DebugTrace forces 100%
// sampling, otherwise SampleRatio applies (parent-based, so a sampled parent
// is always honored), falling back to the SDK default (parent-based
// always-on root) when SampleRatio is zero.
func selectSampler(cfg Config) sdktrace.Sampler {
	if cfg.DebugTrace {
		return sdktrace.AlwaysSample()
	}

	if cfg.SampleRatio > 0 {
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	}

	return sdktrace.ParentBased(sdktrace.AlwaysSample())
}

// ParseOTLPHeaders parses a comma-separated "key=value" header list, the
// format used by OTEL_EXPORTER_OTLP_HEADERS, into a map for the gRPC exporter.
func ParseOTLPHeaders(raw string) map[string]string {
	headers := make(map[string]string)

	if raw == "" {
		return headers
	}

	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return headers
}
