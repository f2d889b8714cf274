package app

import (
	"context"
	"fmt"
	"os"

	"strokerisk/internal/config"
	"strokerisk/internal/logger"
	"strokerisk/internal/model"
	"strokerisk/internal/store"
	webhttp "strokerisk/internal/transport/http/web"

	"golang.org/x/sync/errgroup"
)

// App wires configuration, the model registry, the audit store and the HTTP
// server, and runs them until the context is cancelled.
type App struct {
	cfg      *config.Config
	registry *model.Registry
	store    store.Store
	http     *webhttp.Server
	Summary  *StartupSummary
}

// NewApp builds the application without starting it.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run serves HTTP and, when enabled, watches the model artifact.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.http == nil {
		return fmt.Errorf("http server not initialized")
	}
	if a.Summary != nil {
		a.Summary.Print(os.Stdout)
	}
	defer a.Close()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.http.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	if a.cfg.Model.Watch && a.registry != nil {
		group.Go(func() error {
			if err := a.registry.Watch(ctx); err != nil {
				return fmt.Errorf("model watcher error: %w", err)
			}
			return nil
		})
	}
	return group.Wait()
}

// Close releases the audit store.
func (a *App) Close() {
	if a == nil || a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		logger.Warnf("close store failed: %v", err)
	}
	a.store = nil
}

// Registry exposes the model registry.
func (a *App) Registry() *model.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

// Server exposes the HTTP server.
func (a *App) Server() *webhttp.Server {
	if a == nil {
		return nil
	}
	return a.http
}
