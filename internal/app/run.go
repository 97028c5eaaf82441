package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/document"
)

// Run executes the batch pipeline: load the input, schedule it, write the
// output document and print the summary. A stalled run still writes its
// partial schedule; it only fails in strict mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "input", a.config.InputPath, "output", a.config.OutputPath)

	doc, err := a.loader.Load(ctx, a.config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}

	out, err := a.Schedule(ctx, doc)
	if err != nil {
		return err
	}

	if err := document.WriteFile(a.config.OutputPath, out.Report.Output()); err != nil {
		return err
	}

	if out.Result.Stalled() {
		a.printer.Stalled(string(out.Result.Reason), out.UnscheduledNames())
	}
	if a.config.Table {
		a.printer.Table(out.Report)
	}
	a.printer.Median(out.Report.MedianSpan())
	a.printer.OutputLocation(a.config.OutputPath)
	if out.Stored {
		a.printer.RunID(out.Run.ID)
	}

	if out.Result.Stalled() && a.config.Strict {
		return &StalledError{Reason: string(out.Result.Reason), Unscheduled: len(out.Result.Unscheduled)}
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
