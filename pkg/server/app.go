package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	pkgcache "StockLens/pkg/cache"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	applogger "StockLens/pkg/logger"
)

// App owns the application lifecycle: it starts the HTTP server and
// shuts everything down on SIGINT or SIGTERM.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	cache      pkgcache.Service
	httpServer *xhttp.Server
}

// New creates an App with all dependencies.
func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, cache pkgcache.Service) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		handler: handler,
		cache:   cache,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if !a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	} else if a.cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops the HTTP server and closes the cache.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
