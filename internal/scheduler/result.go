package scheduler

import "github.com/specialistvlad/gridplan/internal/model"

// Outcome is the terminal state of a scheduling run.
type Outcome int

const (
	// Completed means every task of the plan was placed.
	Completed Outcome = iota
	// Stalled means some tasks could not be placed.
	Stalled
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Stalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// StallReason explains a Stalled outcome.
type StallReason string

const (
	// StallNone is the reason of a Completed run.
	StallNone StallReason = ""
	// StallNoWorkers means ready tasks existed but no worker could ever run
	// them, which only happens with an empty worker pool.
	StallNoWorkers StallReason = "no_workers"
	// StallCycle means the ready queue drained while tasks were still
	// waiting on dependencies that can never complete.
	StallCycle StallReason = "dependency_cycle"
)

// Result summarizes a scheduling run. Per-task placement is recorded on the
// plan's tasks themselves.
type Result struct {
	Outcome Outcome
	Reason  StallReason
	Workers int64

	// Scheduled is the number of tasks placed on a worker.
	Scheduled int
	// Unscheduled lists the tasks left without a worker, in plan order.
	Unscheduled []model.NodeKey

	// Makespan is the latest completion time across all placed tasks.
	Makespan int64
	// Clock is the simulated time when the run ended.
	Clock int64
}

// Stalled reports whether the run left tasks unplaced.
func (r *Result) Stalled() bool {
	return r.Outcome == Stalled
}
