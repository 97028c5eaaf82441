package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses a single .hcl file, or every .hcl file under a directory, and
// translates the declarations into the format-agnostic model. Locals are
// shared across all files; `workers_count` must be declared exactly once.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := fsutil.CollectFiles(path, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	roots := make([]*fileRoot, 0, len(files))
	localAttrs := make(map[string]*hcl.Attribute)
	var workers hcl.Expression

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if isExprDefined(root.WorkersCount) {
			if workers != nil {
				return nil, fmt.Errorf("%s: workers_count is already declared at %s", file, workers.Range())
			}
			workers = root.WorkersCount
		}
		for _, block := range root.Locals {
			attrs, diags := block.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid locals block in %s: %w", file, diags)
			}
			for name, attr := range attrs {
				if prev, dup := localAttrs[name]; dup {
					return nil, fmt.Errorf("local '%s' is declared twice, at %s and %s", name, prev.Range, attr.Range)
				}
				localAttrs[name] = attr
			}
		}
		roots = append(roots, &root)
	}

	if workers == nil {
		return nil, fmt.Errorf("%s: missing required attribute workers_count", path)
	}

	locals, err := resolveLocals(ctx, localAttrs)
	if err != nil {
		return nil, err
	}
	evalCtx := newEvalContext(locals)

	doc := &config.Document{}
	if doc.WorkersCount, err = evalInt(workers, evalCtx, "workers_count"); err != nil {
		return nil, err
	}
	for _, root := range roots {
		for _, wb := range root.Workflows {
			wf, err := translateWorkflow(wb, evalCtx)
			if err != nil {
				return nil, err
			}
			doc.Workflows = append(doc.Workflows, wf)
		}
	}

	logger.Debug("HCL loading complete.", "locals", len(locals), "workflows", len(doc.Workflows), "tasks", doc.TaskCount())
	return doc, nil
}

// translateWorkflow evaluates a workflow block into the agnostic model.
func translateWorkflow(wb *workflowBlock, evalCtx *hcl.EvalContext) (*config.Workflow, error) {
	wf := &config.Workflow{
		Name:  wb.Name,
		Tasks: make([]*config.Task, 0, len(wb.Tasks)),
	}
	if isExprDefined(wb.ScheduledAt) {
		at, err := evalInt(wb.ScheduledAt, evalCtx, fmt.Sprintf("workflow '%s' scheduled_at", wb.Name))
		if err != nil {
			return nil, err
		}
		wf.ScheduledAt = at
	}

	for _, tb := range wb.Tasks {
		task := &config.Task{Name: tb.Name, Dependencies: tb.DependsOn}
		where := fmt.Sprintf("workflow '%s' task '%s'", wb.Name, tb.Name)

		cost, err := evalInt(tb.Cost, evalCtx, where+" cost")
		if err != nil {
			return nil, err
		}
		task.Cost = cost

		if isExprDefined(tb.Description) {
			if task.Description, err = evalString(tb.Description, evalCtx, where+" description"); err != nil {
				return nil, err
			}
		}
		wf.Tasks = append(wf.Tasks, task)
	}
	return wf, nil
}
