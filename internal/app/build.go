package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/railpath/internal/ctxlog"
	"github.com/specialistvlad/railpath/internal/metrics"
	"github.com/specialistvlad/railpath/internal/pathfinding"
	"github.com/specialistvlad/railpath/internal/pathstore"
	"github.com/specialistvlad/railpath/internal/routes"
	"github.com/specialistvlad/railpath/internal/scheduler"
	"github.com/specialistvlad/railpath/internal/signs"
	"github.com/specialistvlad/railpath/internal/track"
	"github.com/specialistvlad/railpath/internal/train"
)

// build wires the loaded model into a running graph. The steps run in a fixed
// order: worlds, persistence, sign processing, routes, trains, tick loop.
func (a *App) build() error {
	settings := a.model.Settings

	a.promRegistry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.promRegistry)

	a.graph = pathfinding.New(
		pathfinding.WithLogger(a.logger),
		pathfinding.WithClock(a.clock),
		pathfinding.WithMetrics(a.metrics),
		pathfinding.WithCacheSize(settings.CacheSize),
		pathfinding.WithTickBudget(settings.TickBudget),
		pathfinding.WithStepsPerCheck(settings.StepsPerCheck),
	)
	a.handler = signs.NewHandler(a.registry, a.logger)
	a.graph.RegisterHandler(a.handler)

	if err := a.buildWorlds(); err != nil {
		return err
	}

	tp, err := newTracerProvider(a.ctx, settings, a.outW)
	if err != nil {
		return err
	}
	var storeOpts []pathstore.Option
	if tp != nil {
		a.tracerProvider = tp
		storeOpts = append(storeOpts, pathstore.WithTracerProvider(tp))
		a.logger.Debug("Store tracing enabled.", "exporter", settings.TraceExporter)
	}

	store, err := pathstore.Open(settings.Store, settings.StorePath, a.logger, storeOpts...)
	if err != nil {
		return err
	}
	a.store = store
	if err := a.loadGraph(a.ctx); err != nil {
		return err
	}
	a.processSigns()
	if a.config.Reroute {
		a.logger.Info("Rerouting every node.", "nodes", a.graph.NodeCount())
		a.graph.RerouteAll()
	}

	if err := a.loadRoutes(); err != nil {
		return err
	}
	if err := a.buildTrains(); err != nil {
		return err
	}

	a.loop = scheduler.New(a.clock, settings.TickInterval, settings.MaxTicks,
		scheduler.TaskFunc(a.discoverTick),
		a.fleet,
		scheduler.TaskFunc(a.persistTick),
	)
	a.loop.Observe(a.metrics.ObserveTick)
	a.healthCheckServer()
	return nil
}

func (a *App) buildWorlds() error {
	for _, w := range a.model.Worlds {
		grid := track.NewGrid(w.Name)
		for _, t := range w.Tracks {
			if err := grid.AddTrack(t.Points...); err != nil {
				return fmt.Errorf("world %q track %q: %w", w.Name, t.Label, err)
			}
		}
		board := signs.NewBoard(w.Name)
		for _, s := range w.Signs {
			if !grid.IsRail(s.At) {
				a.logger.Warn("Sign is not placed on track.", "type", s.Type, "location", s.At.String())
			}
			err := board.Add(&signs.Sign{Location: s.At, Type: s.Type, Args: s.Args, Facing: s.Facing})
			if err != nil {
				return fmt.Errorf("world %q: %w", w.Name, err)
			}
		}
		a.grids[w.Name] = grid
		a.handler.AddBoard(board)
		a.graph.AddWorld(w.Name, grid)
		a.logger.Debug("World built.", "world", w.Name, "rails", grid.Len(), "signs", board.Len())
	}
	return nil
}

// loadGraph restores the saved graph. A missing or corrupt save starts from
// an empty graph that is rediscovered from the signs.
func (a *App) loadGraph(ctx context.Context) error {
	err := a.store.Load(ctx, a.graph)
	switch {
	case err == nil:
		a.logger.Info("Routing graph restored.", "nodes", a.graph.NodeCount())
	case errors.Is(err, pathstore.ErrNotFound):
		a.logger.Info("No saved routing graph, discovering from scratch.")
	case errors.Is(err, pathfinding.ErrCorruptGraph):
		a.logger.Error("Saved routing graph is corrupt, discovering from scratch.", "error", err)
	default:
		return fmt.Errorf("failed to load routing graph: %w", err)
	}
	return nil
}

// processSigns runs the routing handlers at every sign so that nodes missing
// from the graph are created and scheduled for discovery.
func (a *App) processSigns() {
	for _, w := range a.graph.Worlds() {
		board := a.handler.Board(w.Name())
		if board == nil {
			continue
		}
		for _, loc := range board.Locations() {
			w.ProcessLocation(loc)
		}
	}
	a.logger.Debug("Signs processed.",
		"nodes", a.graph.NodeCount(), "pending_discoveries", a.graph.Provider().Pending())
}

// loadRoutes reads the routes file, then applies the routes declared in the
// layout on top of it.
func (a *App) loadRoutes() error {
	a.routes = routes.NewManager()
	if path := a.model.Settings.RoutesPath; path != "" {
		if err := a.routes.Load(path); err != nil {
			return err
		}
	}
	for _, r := range a.model.Routes {
		a.routes.Store(r.Name, r.Destinations)
	}
	missing := a.routes.MissingDestinations(a.destinationKnown)
	for name, dests := range missing {
		a.logger.Warn("Route names unknown destinations.", "route", name, "destinations", dests)
	}
	a.logger.Debug("Routes loaded.", "count", a.routes.Len())
	return nil
}

func (a *App) destinationKnown(name string) bool {
	for _, w := range a.graph.Worlds() {
		if w.Node(name) != nil {
			return true
		}
	}
	return false
}

func (a *App) buildTrains() error {
	a.fleet = train.NewFleet(a.graph)
	for _, t := range a.model.Trains {
		w, ok := a.graph.World(t.World)
		if !ok {
			return fmt.Errorf("train %q: %w: %s", t.Name, pathfinding.ErrUnknownWorld, t.World)
		}
		var route []string
		if t.Route != "" {
			if route = a.routes.Get(t.Route); route == nil {
				return fmt.Errorf("train %q: unknown route %q", t.Name, t.Route)
			}
		}
		tr, err := train.New(w, train.Config{
			Name:        t.Name,
			Start:       track.Position{Location: t.At, Direction: t.Direction},
			Route:       route,
			Destination: t.Destination,
			Speed:       t.Speed,
		})
		if err != nil {
			return err
		}
		a.fleet.Add(tr)
	}
	return nil
}

// discoverTick spends the tick budget on pending discoveries.
func (a *App) discoverTick(ctx context.Context, _ uint64) {
	p := a.graph.Provider()
	if !p.IsProcessing() {
		return
	}
	logger := ctxlog.FromContext(ctx)
	steps := p.Run(ctx)
	if !p.IsProcessing() {
		logger.Info("Discovery settled.", "nodes", a.graph.NodeCount())
		return
	}
	logger.Debug("Discovery tick.", "steps", steps, "pending", p.Pending())
}

// persistTick saves once discovery settled when save_on_change is set.
func (a *App) persistTick(ctx context.Context, _ uint64) {
	if !a.model.Settings.SaveOnChange || a.graph.Provider().IsProcessing() {
		return
	}
	if !a.graph.IsDirty() && !a.routes.IsDirty() {
		return
	}
	if err := a.save(ctx); err != nil {
		ctxlog.FromContext(ctx).Error("Failed to save routing state.", "error", err)
	}
}
