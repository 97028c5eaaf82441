package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/gridplan/internal/builder"
	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/model"
	"github.com/specialistvlad/gridplan/internal/report"
	"github.com/specialistvlad/gridplan/internal/scheduler"
	"github.com/specialistvlad/gridplan/internal/store"
)

// Outcome is everything one pass of the pipeline produced.
type Outcome struct {
	Plan   *model.Plan
	Result *scheduler.Result
	Report *report.Report
	Run    *store.Run
	Stored bool
}

// UnscheduledNames renders the unplaced tasks as "workflow/task".
func (o *Outcome) UnscheduledNames() []string {
	names := make([]string, 0, len(o.Result.Unscheduled))
	for _, key := range o.Result.Unscheduled {
		names = append(names, o.Plan.Workflows[key.Workflow].Name+"/"+o.Plan.Task(key).Name)
	}
	return names
}

// Schedule builds, schedules and reports on doc, then records the run in
// the metrics and, when enabled, the store.
func (a *App) Schedule(ctx context.Context, doc *config.Document) (*Outcome, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	start := time.Now()

	if doc != nil {
		if a.config.Workers != NoWorkersOverride {
			a.logger.Debug("Overriding worker count.", "document", doc.WorkersCount, "override", a.config.Workers)
			doc.WorkersCount = a.config.Workers
		}
		ctx = ctxlog.With(ctx, "workers", doc.WorkersCount)
	}
	logger := ctxlog.FromContext(ctx)

	plan, err := builder.Build(ctx, doc, builder.Options{AllowCycles: a.config.AllowCycles})
	if err != nil {
		return nil, fmt.Errorf("failed to build plan: %w", err)
	}
	res, err := scheduler.New(plan.Workers).Run(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("scheduling failed: %w", err)
	}
	rep := report.Generate(plan)
	a.metrics.Observe(res, rep, time.Since(start))

	out := &Outcome{Plan: plan, Result: res, Report: rep, Run: store.NewRun(res, rep)}
	if a.store != nil {
		if err := a.store.SaveRun(ctx, out.Run); err != nil {
			return nil, err
		}
		out.Stored = true
	}

	logger.Info("Schedule computed.",
		"run_id", out.Run.ID,
		"outcome", res.Outcome.String(),
		"workflows", len(plan.Workflows),
		"scheduled", res.Scheduled,
		"unscheduled", len(res.Unscheduled),
		"makespan", res.Makespan,
		"median", out.Run.Median,
	)
	return out, nil
}

// ScheduleRun is Schedule reduced to the stored view of the run.
func (a *App) ScheduleRun(ctx context.Context, doc *config.Document) (*store.Run, error) {
	out, err := a.Schedule(ctx, doc)
	if err != nil {
		return nil, err
	}
	return out.Run, nil
}
