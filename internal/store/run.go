package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridplan/internal/model"
	"github.com/specialistvlad/gridplan/internal/report"
	"github.com/specialistvlad/gridplan/internal/scheduler"
)

// Run is one stored schedule.
type Run struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Workers   int64     `db:"workers"`
	Outcome   string    `db:"outcome"`
	Reason    string    `db:"reason"`
	Median    int64     `db:"median"`
	Makespan  int64     `db:"makespan"`

	// Workflows is only populated by GetRun.
	Workflows []*WorkflowResult `db:"-"`
}

// WorkflowResult is a workflow's placement within a run.
type WorkflowResult struct {
	RunID       string `db:"run_id"`
	Position    int    `db:"position"`
	Name        string `db:"name"`
	ScheduledAt int64  `db:"scheduled_at"`
	CompletedAt int64  `db:"completed_at"`

	Tasks []*TaskAssignment `db:"-"`
}

// TaskAssignment is a task's placement within a run.
type TaskAssignment struct {
	RunID            string `db:"run_id"`
	WorkflowPosition int    `db:"workflow_position"`
	Position         int    `db:"position"`
	Name             string `db:"name"`
	Worker           string `db:"worker"`
	StartedAt        int64  `db:"started_at"`
	CompletedAt      int64  `db:"completed_at"`
}

// NewRun captures a scheduling result and its report under a fresh id.
func NewRun(res *scheduler.Result, rep *report.Report) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Workers:   res.Workers,
		Outcome:   res.Outcome.String(),
		Reason:    string(res.Reason),
		Median:    rep.MedianSpan(),
		Makespan:  res.Makespan,
		Workflows: make([]*WorkflowResult, 0, len(rep.Workflows)),
	}
	for i, w := range rep.Workflows {
		wr := &WorkflowResult{
			RunID:       run.ID,
			Position:    i,
			Name:        w.Name,
			ScheduledAt: w.ScheduledAt,
			CompletedAt: w.CompletedAt,
			Tasks:       make([]*TaskAssignment, 0, len(w.Tasks)),
		}
		for j, t := range w.Tasks {
			wr.Tasks = append(wr.Tasks, &TaskAssignment{
				RunID:            run.ID,
				WorkflowPosition: i,
				Position:         j,
				Name:             t.Name,
				Worker:           t.Worker,
				StartedAt:        t.StartedAt,
				CompletedAt:      t.CompletedAt,
			})
		}
		run.Workflows = append(run.Workflows, wr)
	}
	return run
}

// Report rebuilds the report view of a run loaded with GetRun.
func (r *Run) Report() *report.Report {
	rep := &report.Report{Workflows: make([]report.WorkflowReport, 0, len(r.Workflows))}
	for _, w := range r.Workflows {
		wr := report.WorkflowReport{
			Name:        w.Name,
			ScheduledAt: w.ScheduledAt,
			CompletedAt: w.CompletedAt,
			Tasks:       make([]report.TaskReport, 0, len(w.Tasks)),
		}
		for _, t := range w.Tasks {
			wr.Tasks = append(wr.Tasks, report.TaskReport{
				Name:        t.Name,
				StartedAt:   t.StartedAt,
				CompletedAt: t.CompletedAt,
				Worker:      t.Worker,
				Scheduled:   t.Worker != model.FormatWorker(model.Unassigned),
			})
		}
		rep.Workflows = append(rep.Workflows, wr)
	}
	return rep
}
