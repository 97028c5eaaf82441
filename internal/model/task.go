// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Task structure and its lifecycle defaults.
//
// A Task starts with no readiness time and no worker. The builder sets its
// readiness to the owning workflow's scheduled time and counts its unresolved
// dependencies. The scheduler later drives the indegree to the Enqueued
// sentinel, exactly once, and stamps the assignment.
package model

import "fmt"

const (
	// Enqueued is the indegree sentinel for a task that has been pushed into
	// the ready queue. It prevents a task from being enqueued twice.
	Enqueued int64 = -1

	// Unassigned is the worker id of a task that has not been scheduled.
	Unassigned int64 = -1

	// NoReadyTime is the readiness of a task before the builder initializes it.
	NoReadyTime int64 = -1
)

// NodeKey addresses a single task within a plan.
type NodeKey struct {
	Workflow int
	Task     int
}

// String renders the key as "workflow/task".
func (k NodeKey) String() string {
	return fmt.Sprintf("%d/%d", k.Workflow, k.Task)
}

// Task is a unit of work belonging to exactly one workflow.
type Task struct {
	ID          int
	WorkflowID  int
	Name        string
	Description string
	Cost        int64

	// Indegree is the number of dependencies that have not completed yet,
	// or Enqueued once the task has entered the ready queue.
	Indegree int64

	WorkerID    int64
	ReadyAt     int64
	StartedAt   int64
	CompletedAt int64
}

// NewTask returns a task with its documented defaults: no dependencies
// counted, no readiness time and no worker.
func NewTask(workflowID, id int, name string) *Task {
	return &Task{
		ID:         id,
		WorkflowID: workflowID,
		Name:       name,
		Indegree:   0,
		WorkerID:   Unassigned,
		ReadyAt:    NoReadyTime,
	}
}

// Key returns the task's address within the plan.
func (t *Task) Key() NodeKey {
	return NodeKey{Workflow: t.WorkflowID, Task: t.ID}
}

// Scheduled reports whether the scheduler assigned the task to a worker.
func (t *Task) Scheduled() bool {
	return t.WorkerID != Unassigned
}

// Assign records the task's placement on a worker starting at the given time.
// The completion time is always start plus cost.
func (t *Task) Assign(worker, start int64) {
	t.WorkerID = worker
	t.StartedAt = start
	t.CompletedAt = start + t.Cost
}

// RaiseReadyAt moves the readiness time forward to at. It never lowers it.
func (t *Task) RaiseReadyAt(at int64) {
	if at > t.ReadyAt {
		t.ReadyAt = at
	}
}

// FormatWorker renders a worker id the way the output document expects it:
// "w" followed by the id, so an unassigned task renders as "w-1".
func FormatWorker(id int64) string {
	return fmt.Sprintf("w%d", id)
}
