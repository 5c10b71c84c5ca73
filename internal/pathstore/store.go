// Package pathstore persists the routing graph.
//
// Every backend stores the compressed stream produced by
// pathfinding.Graph.Encode. Load and Save are traced with OpenTelemetry.
package pathstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/railpath/internal/config"
	"github.com/specialistvlad/railpath/internal/pathfinding"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound is returned by Load when nothing was saved yet.
var ErrNotFound = errors.New("pathstore: no saved graph")

const tracerName = "github.com/specialistvlad/railpath/internal/pathstore"

// Option configures a store.
type Option func(*tracing)

// WithTracerProvider records store spans with tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *tracing) {
		if tp != nil {
			t.tracer = tp.Tracer(tracerName)
		}
	}
}

type tracing struct {
	tracer trace.Tracer
}

func newTracing(opts []Option) tracing {
	t := tracing{tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Store loads and saves a graph.
type Store interface {
	// Load replaces the graph contents with the saved graph.
	Load(ctx context.Context, g *pathfinding.Graph) error
	// Save writes the graph and clears its dirty flag.
	Save(ctx context.Context, g *pathfinding.Graph) error
	Close() error
}

// Open returns the store of the given kind.
func Open(kind, path string, logger *slog.Logger, opts ...Option) (Store, error) {
	switch kind {
	case "", config.StoreMemory:
		return NewMemory(opts...), nil
	case config.StoreFile:
		if path == "" {
			return nil, fmt.Errorf("pathstore: %s store needs a path", kind)
		}
		return NewFile(path, opts...), nil
	case config.StoreBadger:
		return OpenBadger(path, logger, opts...)
	default:
		return nil, fmt.Errorf("pathstore: unknown store kind %q", kind)
	}
}

// traced runs fn inside a span named after the backend and operation.
func (t tracing) traced(ctx context.Context, backend, op string, fn func(ctx context.Context) error) error {
	ctx, span := t.tracer.Start(ctx, "pathstore."+backend+"."+op,
		trace.WithAttributes(attribute.String("pathstore.backend", backend)),
	)
	defer span.End()

	err := fn(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		span.SetStatus(codes.Ok, "not found")
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	default:
		span.SetStatus(codes.Ok, "")
	}
	return err
}
