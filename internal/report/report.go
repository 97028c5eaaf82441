// Package report aggregates a scheduled plan into per-workflow spans and the
// median workflow execution time.
package report

import (
	"slices"

	"github.com/specialistvlad/gridplan/internal/document"
	"github.com/specialistvlad/gridplan/internal/model"
)

// TaskReport is the placement of a single task.
type TaskReport struct {
	Name        string
	StartedAt   int64
	CompletedAt int64
	Worker      string
	Scheduled   bool
}

// WorkflowReport is the placement of a workflow. ScheduledAt is the earliest
// start and CompletedAt the latest completion among its tasks.
type WorkflowReport struct {
	Name        string
	ScheduledAt int64
	CompletedAt int64
	Tasks       []TaskReport
}

// Span is the workflow's execution time, completion minus start.
func (w WorkflowReport) Span() int64 {
	return w.CompletedAt - w.ScheduledAt
}

// Report is the read-only view of a scheduled plan.
type Report struct {
	Workflows []WorkflowReport
}

// Generate builds the report of a (fully or partially) scheduled plan.
//
// Every task takes part in its workflow's min/max, including tasks that were
// never placed: their zero timestamps pull the workflow's start to 0. A
// workflow without tasks reports 0 for both bounds.
func Generate(plan *model.Plan) *Report {
	r := &Report{Workflows: make([]WorkflowReport, 0, len(plan.Workflows))}
	for _, w := range plan.Workflows {
		wr := WorkflowReport{
			Name:  w.Name,
			Tasks: make([]TaskReport, 0, len(w.Tasks)),
		}
		for i, t := range w.Tasks {
			if i == 0 {
				wr.ScheduledAt, wr.CompletedAt = t.StartedAt, t.CompletedAt
			}
			wr.ScheduledAt = min(wr.ScheduledAt, t.StartedAt)
			wr.CompletedAt = max(wr.CompletedAt, t.CompletedAt)
			wr.Tasks = append(wr.Tasks, TaskReport{
				Name:        t.Name,
				StartedAt:   t.StartedAt,
				CompletedAt: t.CompletedAt,
				Worker:      model.FormatWorker(t.WorkerID),
				Scheduled:   t.Scheduled(),
			})
		}
		r.Workflows = append(r.Workflows, wr)
	}
	return r
}

// Output renders the report as the output document.
func (r *Report) Output() *document.Output {
	out := &document.Output{Workflows: make([]document.OutputWorkflow, 0, len(r.Workflows))}
	for _, w := range r.Workflows {
		ow := document.OutputWorkflow{
			Name:        w.Name,
			ScheduledAt: w.ScheduledAt,
			CompletedAt: w.CompletedAt,
			Tasks:       make([]document.OutputTask, 0, len(w.Tasks)),
		}
		for _, t := range w.Tasks {
			ow.Tasks = append(ow.Tasks, document.OutputTask{
				Name:        t.Name,
				StartedAt:   t.StartedAt,
				CompletedAt: t.CompletedAt,
				Worker:      t.Worker,
			})
		}
		out.Workflows = append(out.Workflows, ow)
	}
	return out
}

// Spans returns every workflow's span sorted ascending.
func (r *Report) Spans() []int64 {
	spans := make([]int64, 0, len(r.Workflows))
	for _, w := range r.Workflows {
		spans = append(spans, w.Span())
	}
	slices.Sort(spans)
	return spans
}

// MedianSpan is Median applied to the report's spans.
func (r *Report) MedianSpan() int64 {
	return Median(r.Spans())
}

// Median returns the median of an ascending slice. For an odd count it is the
// middle element. For an even count it is the element at index len/2-1, the
// lower of the two middle elements, not their average. An empty slice has a
// median of 0.
func Median(sorted []int64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1]
}
