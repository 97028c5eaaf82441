// Package scheduler places the tasks of a built plan onto a pool of
// interchangeable workers.
//
// # How It Works
//
// The scheduler is a single-threaded simulation driven by two priority
// queues and a simulated clock:
//
//   - Ready queue: tasks whose dependencies have all completed, ordered by
//     readiness time, then cost, then position in the plan.
//   - Busy queue: workers currently running a task, ordered by the time they
//     become free.
//
// Each iteration pops the most urgent ready task and advances the clock to
// max(clock+1, readiness). The "+1" means no two tasks ever start on the same
// tick, even when they were queued back to back. If no worker is free, the
// clock jumps to the soonest completion; every worker done by then returns to
// the free pool and the smallest free worker id takes the task. Completing a
// task raises the readiness of each successor and enqueues those whose last
// dependency it was.
//
// # Terminal States
//
// A run ends in one of two states:
//   - Completed: the ready queue drained and every task was placed.
//   - Stalled: tasks remain unplaced, either because there is no worker at
//     all (StallNoWorkers) or because some tasks never became ready, which
//     only happens when the plan contains a dependency cycle (StallCycle).
//
// There is no backtracking: once placed, a task's assignment is final. Given
// the same plan and worker count the schedule is always identical.
package scheduler
