package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer used by the application
const InstrumentationName = "github.com/yigit/coursecatalog"

// Supported exporters
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config selects whether and where spans are exported
type Config struct {
	Enabled     bool
	Exporter    string
	Endpoint    string
	Insecure    bool
	ServiceName string
	// Output receives stdout exporter output; defaults to os.Stdout
	Output io.Writer
}

// Provider owns the tracer provider and its shutdown
type Provider struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

// Init builds the tracer provider described by cfg
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return NewNoopProvider(), nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build tracing resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Provider{provider: tp, shutdown: tp.Shutdown}, nil
}

// NewProvider wraps an existing SDK tracer provider, mainly for tests
func NewProvider(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{provider: tp, shutdown: tp.Shutdown}
}

// NewNoopProvider returns a provider whose spans are discarded
func NewNoopProvider() *Provider {
	return &Provider{
		provider: noop.NewTracerProvider(),
		shutdown: func(context.Context) error { return nil },
	}
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterStdout, "":
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		return exp, nil
	case ExporterOTLP:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exp, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("unsupported tracing exporter %q", cfg.Exporter)
	}
}

// TracerProvider returns the underlying provider
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.provider
}

// Tracer returns the application tracer
func (p *Provider) Tracer() trace.Tracer {
	return p.provider.Tracer(InstrumentationName)
}

// Shutdown flushes pending spans and releases the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}
