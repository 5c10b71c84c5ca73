package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/railpath/internal/ctxlog"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Run drives the tick loop until ctx is cancelled or the layout's tick limit
// is reached, serving the health check endpoints alongside. It always shuts
// down cleanly: pending discoveries are finished and the routing state is
// saved.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		a.logger.Info("🚂 Tick loop starting.",
			"interval", a.model.Settings.TickInterval, "trains", a.fleet.Len())
		if err := a.loop.Run(gctx); err != nil {
			return fmt.Errorf("tick loop failed: %w", err)
		}
		a.logger.Info("🏁 Tick loop finished.", "ticks", a.loop.Ticks())
		return nil
	})

	if a.httpServer != nil {
		g.Go(a.serveHealthCheck)
		g.Go(func() error {
			<-gctx.Done()
			return a.closeHealthCheckServer()
		})
	}

	err := g.Wait()
	err = multierr.Append(err, a.Shutdown(ctx))
	a.logger.Debug("App.Run method finished.")
	return err
}

// Shutdown finishes every pending discovery and saves the routing state.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Debug("Shutting down routing graph.", "pending", a.graph.Provider().Pending())
	a.graph.Provider().Stop()
	return a.save(ctx)
}

// save writes the graph and the routes when they changed.
func (a *App) save(ctx context.Context) error {
	var err error
	if a.graph.IsDirty() {
		if saveErr := a.store.Save(ctx, a.graph); saveErr != nil {
			err = multierr.Append(err, fmt.Errorf("save routing graph: %w", saveErr))
		} else {
			a.logger.Info("Routing graph saved.", "nodes", a.graph.NodeCount(), "store", a.model.Settings.Store)
		}
	}
	if path := a.model.Settings.RoutesPath; path != "" && a.routes.IsDirty() {
		if saveErr := a.routes.Save(path); saveErr != nil {
			err = multierr.Append(err, saveErr)
		} else {
			a.logger.Info("Routes saved.", "count", a.routes.Len(), "path", path)
		}
	}
	return err
}

// Close releases the store, flushes recorded spans and stops the health
// check server if it is still running.
func (a *App) Close() error {
	var err error
	if a.httpServer != nil {
		err = multierr.Append(err, a.httpServer.Close())
	}
	if a.store != nil {
		err = multierr.Append(err, a.store.Close())
	}
	if a.tracerProvider != nil {
		err = multierr.Append(err, a.tracerProvider.Shutdown(context.Background()))
		a.tracerProvider = nil
	}
	return err
}
