package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/railpath/internal/config"
	"github.com/specialistvlad/railpath/internal/ctxlog"
	"github.com/specialistvlad/railpath/internal/metrics"
	"github.com/specialistvlad/railpath/internal/pathfinding"
	"github.com/specialistvlad/railpath/internal/pathstore"
	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/internal/routes"
	"github.com/specialistvlad/railpath/internal/scheduler"
	"github.com/specialistvlad/railpath/internal/signs"
	"github.com/specialistvlad/railpath/internal/track"
	"github.com/specialistvlad/railpath/internal/train"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	clock    clock.Clock
	modules  []registry.Module
	config   *Config
	model    *config.Model
	registry *registry.Registry

	graph   *pathfinding.Graph
	handler *signs.Handler
	grids   map[string]*track.Grid
	store   pathstore.Store
	routes  *routes.Manager
	fleet   *train.Fleet
	loop    *scheduler.TickLoop

	promRegistry *prometheus.Registry
	metrics      *metrics.Recorder
	httpServer   *http.Server

	tracerProvider *sdktrace.TracerProvider
}

// Option customizes an App.
type Option func(*App)

// WithModules replaces the built-in sign modules.
func WithModules(modules ...registry.Module) Option {
	return func(a *App) { a.modules = modules }
}

// WithClock sets the clock used by the tick loop and the discovery budget.
func WithClock(c clock.Clock) Option {
	return func(a *App) { a.clock = c }
}

// NewApp is the constructor for the main application. It loads the layout,
// validates it against the registered sign modules and builds the routing
// graph, either from the configured store or by discovering it from scratch.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	a := &App{
		outW:    outW,
		logger:  logger,
		ctx:     ctxlog.WithLogger(context.Background(), logger),
		clock:   clock.New(),
		modules: coreModules,
		config:  appConfig,
		grids:   make(map[string]*track.Grid),
	}
	for _, opt := range opts {
		opt(a)
	}
	logger.Debug("Logger configured successfully.")

	cfgModel, err := loader.Load(a.ctx, appConfig.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.MaxTicks > 0 {
		cfgModel.Settings.MaxTicks = appConfig.MaxTicks
	}
	a.model = cfgModel
	logger.Debug("Configuration loaded and translated into unified model.")

	a.registry = registry.New()
	a.registry.RegisterModules(a.modules...)
	logger.Debug("All Go modules registered.", "count", len(a.modules))

	if err := a.registry.ValidateLayout(a.ctx, cfgModel); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	if err := a.build(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Graph returns the routing graph.
func (a *App) Graph() *pathfinding.Graph { return a.graph }

// Routes returns the route manager.
func (a *App) Routes() *routes.Manager { return a.routes }

// Fleet returns the simulated trains.
func (a *App) Fleet() *train.Fleet { return a.fleet }

// Model returns the loaded configuration model.
func (a *App) Model() *config.Model { return a.model }

// Metrics returns the Prometheus registry holding the app's collectors.
func (a *App) Metrics() *prometheus.Registry { return a.promRegistry }
