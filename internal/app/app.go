package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/console"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/metrics"
	"github.com/specialistvlad/gridplan/internal/store"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	printer *console.Printer
	metrics *metrics.Metrics
	store   *store.Store
}

// NewApp is the constructor for the main application. Console output goes
// to outW and logs to logW. The store is opened and migrated when
// Config.DBPath is set; call Close to release it.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		logger:  logger,
		config:  cfg,
		loader:  loader,
		printer: console.NewPrinter(outW, cfg.NoColor),
		metrics: metrics.New(),
	}

	if cfg.DBPath != "" {
		st, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
		a.store = st
		logger.Debug("Schedule store enabled.", "db", cfg.DBPath)
	}
	return a, nil
}

// Close releases the store, if any.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// Metrics returns the application's collectors. This is primarily for testing.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Store returns the schedule store, or nil when it is disabled.
func (a *App) Store() *store.Store {
	return a.store
}
