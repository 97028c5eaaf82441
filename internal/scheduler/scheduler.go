package scheduler

import (
	"container/heap"
	"context"
	"errors"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/model"
)

// ErrNegativeWorkers is returned by Run when the pool size is negative.
var ErrNegativeWorkers = errors.New("worker count must not be negative")

// Scheduler is the greedy list scheduler over a fixed pool of workers.
type Scheduler struct {
	workers int64
}

// New creates a scheduler for a pool of the given size.
func New(workers int64) *Scheduler {
	return &Scheduler{workers: workers}
}

// Run places every task of the plan that can be placed, mutating the tasks'
// worker, start and completion fields in place. The returned error is only
// non-nil for invalid input or a cancelled context; a run that could not
// place every task returns a Stalled result instead.
func (s *Scheduler) Run(ctx context.Context, plan *model.Plan) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	if s.workers < 0 {
		return nil, ErrNegativeWorkers
	}
	logger.Debug("Scheduler: Starting run.", "workers", s.workers, "tasks", plan.TaskCount())

	pool := newWorkerPool(s.workers)
	ready := &readyQueue{}
	busy := &busyQueue{}

	plan.EachTask(func(t *model.Task) {
		if t.Indegree == 0 {
			ready.enqueue(t)
		}
	})
	logger.Debug("Scheduler: Initial ready set.", "ready", ready.Len())

	res := &Result{Outcome: Completed, Workers: s.workers}
	var clock int64

	for ready.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := ready.next()
		clock = max(clock+1, t.ReadyAt)

		if pool.free() == 0 {
			if busy.Len() == 0 {
				res.Outcome, res.Reason = Stalled, StallNoWorkers
				break
			}
			clock = max(clock, busy.peek().until)
		}

		for busy.Len() > 0 && busy.peek().until <= clock {
			pool.release(heap.Pop(busy).(busyWorker).id)
		}

		worker, ok := pool.take()
		if !ok {
			res.Outcome, res.Reason = Stalled, StallNoWorkers
			break
		}

		t.Assign(worker, clock)
		heap.Push(busy, busyWorker{id: worker, until: t.CompletedAt})
		res.Scheduled++
		res.Makespan = max(res.Makespan, t.CompletedAt)
		logger.Debug("Scheduler: Task placed.", "task", t.Key(), "worker", worker, "started_at", t.StartedAt, "completed_at", t.CompletedAt)

		for _, key := range plan.Successors(t.Key()) {
			succ := plan.Task(key)
			succ.Indegree--
			succ.RaiseReadyAt(t.CompletedAt)
			if succ.Indegree == 0 {
				ready.enqueue(succ)
			}
		}
	}
	res.Clock = clock

	plan.EachTask(func(t *model.Task) {
		if !t.Scheduled() {
			res.Unscheduled = append(res.Unscheduled, t.Key())
		}
	})
	if res.Outcome == Completed && len(res.Unscheduled) > 0 {
		res.Outcome, res.Reason = Stalled, StallCycle
	}

	if res.Stalled() {
		logger.Warn("Scheduler: Run stalled, tasks left unscheduled.", "reason", string(res.Reason), "unscheduled", len(res.Unscheduled), "scheduled", res.Scheduled)
	} else {
		logger.Debug("Scheduler: Run completed.", "scheduled", res.Scheduled, "makespan", res.Makespan)
	}
	return res, nil
}
