package app

import (
	"context"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/server"
)

// Serve runs the HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context, version string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	opts := server.Options{
		Scheduler: a,
		Metrics:   a.metrics.Handler(),
		Version:   version,
	}
	if a.store != nil {
		opts.Runs = a.store
	}
	return server.New(ctx, opts).Run(ctx, a.config.ListenAddr)
}
