package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/railpath/internal/ctxlog"
)

// healthHandler reports that the process is alive.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// readyHandler reports 503 while discovery is still building the graph.
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	p := a.graph.Provider()
	if p.IsProcessing() {
		logger.Debug("Readiness check while discovering.", "remote_addr", r.RemoteAddr, "pending", p.Pending())
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "discovering (%d pending)\n", p.Pending())
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "READY")
}

// Handler returns the health check mux: /health, /readyz and /metrics.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/readyz", a.readyHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(a.promRegistry, promhttp.HandlerOpts{}))
	return mux
}

// healthCheckServer initializes the health check HTTP server.
func (a *App) healthCheckServer() {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Configuring health check server.")
	if a.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return
	}

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.HealthcheckPort),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// serveHealthCheck blocks until the server is shut down.
func (a *App) serveHealthCheck() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", a.httpServer.Addr))
	// ListenAndServe returns ErrServerClosed on graceful shutdown.
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Health check server failed unexpectedly", "error", err)
		return err
	}
	return nil
}

func (a *App) closeHealthCheckServer() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Closing health check server...")

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
