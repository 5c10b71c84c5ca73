package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/railpath/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newTracerProvider builds the span pipeline selected by the layout settings.
// It returns nil when tracing is off. Spans are batched; Close flushes them.
func newTracerProvider(ctx context.Context, s config.Settings, outW io.Writer) (*sdktrace.TracerProvider, error) {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch s.TraceExporter {
	case "", config.TraceNone:
		return nil, nil
	case config.TraceStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(outW))
	case config.TraceOTLP:
		var opts []otlptracegrpc.Option
		if s.TraceEndpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(s.TraceEndpoint))
		}
		if s.TraceInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err = otlptracegrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", s.TraceExporter)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s trace exporter: %w", s.TraceExporter, err)
	}

	res := resource.NewWithAttributes("",
		attribute.String("service.name", "railpath"),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
