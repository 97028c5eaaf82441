package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/dag"
	"github.com/specialistvlad/gridplan/internal/model"
)

// Options tunes plan construction.
type Options struct {
	// AllowCycles skips cycle rejection. Tasks on a cycle then never become
	// ready and the scheduler reports a stalled run.
	AllowCycles bool
}

// Build constructs a complete, validated plan from a declaration document.
func Build(ctx context.Context, doc *config.Document, opts Options) (*model.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting plan construction.")

	if err := config.Validate(ctx, doc); err != nil {
		return nil, err
	}

	plan := model.NewPlan(doc.WorkersCount)

	// First pass: create all workflows and their tasks.
	createNodes(ctx, doc, plan)
	logger.Debug("Build: Node creation complete.", "workflow_count", len(plan.Workflows), "task_count", plan.TaskCount())

	// Second pass: link dependencies.
	if err := linkNodes(ctx, doc, plan); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.", "edge_count", plan.EdgeCount())

	// Final validation: cycle detection.
	if opts.AllowCycles {
		logger.Warn("Build: Cycle detection disabled; cyclic tasks will be left unscheduled.")
	} else {
		if err := detectCycles(plan); err != nil {
			return nil, fmt.Errorf("error validating dependency graph: %w", err)
		}
		logger.Debug("Build: Cycle detection passed.")
	}

	logger.Info("Build: Plan construction successful.", "workflows", len(plan.Workflows), "tasks", plan.TaskCount(), "workers", plan.Workers)
	return plan, nil
}

// createNodes performs the first pass, assigning dense ids in declaration order.
func createNodes(ctx context.Context, doc *config.Document, plan *model.Plan) {
	logger := ctxlog.FromContext(ctx)
	for _, wd := range doc.Workflows {
		w := plan.AddWorkflow(wd.Name, wd.ScheduledAt)
		for _, td := range wd.Tasks {
			w.AddTask(td.Name, td.Description, td.Cost)
		}
		logger.Debug("Created workflow nodes.", "workflow", w.Name, "workflow_id", w.ID, "task_count", len(w.Tasks))
	}
}

// linkNodes performs the second pass, resolving dependency names into edges
// and counting each task's unmet dependencies.
func linkNodes(ctx context.Context, doc *config.Document, plan *model.Plan) error {
	logger := ctxlog.FromContext(ctx)
	for i, wd := range doc.Workflows {
		w := plan.Workflows[i]
		for j, td := range wd.Tasks {
			task := w.Tasks[j]
			for _, depName := range td.Dependencies {
				depID, ok := w.TaskID(depName)
				if !ok {
					return &UnresolvedDependencyError{Workflow: w.Name, Task: task.Name, Dependency: depName}
				}
				task.Indegree++
				plan.AddEdge(model.NodeKey{Workflow: w.ID, Task: depID}, task.Key())
			}
			if len(td.Dependencies) > 0 {
				logger.Debug("Linked dependencies.", "workflow", w.Name, "task", task.Name, "count", len(td.Dependencies))
			}
		}
	}
	return nil
}

// detectCycles mirrors the plan's edges into a dag.Graph and checks it.
func detectCycles(plan *model.Plan) error {
	g := dag.New[model.NodeKey]()
	plan.EachTask(func(t *model.Task) { g.AddNode(t.Key()) })

	var edgeErr error
	plan.EachTask(func(t *model.Task) {
		if edgeErr != nil {
			return
		}
		for _, succ := range plan.Successors(t.Key()) {
			if err := g.AddEdge(t.Key(), succ); err != nil {
				// The only edge the graph refuses here is a self reference.
				edgeErr = cycleErrorFor(plan, t.Key())
				return
			}
		}
	})
	if edgeErr != nil {
		return edgeErr
	}

	if err := g.DetectCycles(); err != nil {
		var cycleErr *dag.CycleError[model.NodeKey]
		if errors.As(err, &cycleErr) {
			return cycleErrorFor(plan, cycleErr.Node)
		}
		return err
	}
	return nil
}

func cycleErrorFor(plan *model.Plan, key model.NodeKey) error {
	t := plan.Task(key)
	return &CyclicDependencyError{Workflow: plan.Workflows[key.Workflow].Name, Task: t.Name}
}
