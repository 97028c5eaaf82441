// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Workflow and Plan structures.
//
// The Plan replaces process-wide lookup tables: name/id mappings live on the
// plan that produced them and die with it.
package model

// Workflow is an ordered collection of tasks with a common earliest start.
type Workflow struct {
	ID          int
	Name        string
	ScheduledAt int64
	Tasks       []*Task

	// taskIDs maps task names to their dense ids within this workflow.
	taskIDs map[string]int
}

// NewWorkflow creates an empty workflow.
func NewWorkflow(id int, name string, scheduledAt int64) *Workflow {
	return &Workflow{
		ID:          id,
		Name:        name,
		ScheduledAt: scheduledAt,
		Tasks:       []*Task{},
		taskIDs:     make(map[string]int),
	}
}

// AddTask appends a task with the next dense id and returns it. The task's
// readiness starts at the workflow's scheduled time.
func (w *Workflow) AddTask(name, description string, cost int64) *Task {
	t := NewTask(w.ID, len(w.Tasks), name)
	t.Description = description
	t.Cost = cost
	t.ReadyAt = w.ScheduledAt
	w.Tasks = append(w.Tasks, t)
	w.taskIDs[name] = t.ID
	return t
}

// TaskID resolves a task name declared in this workflow.
func (w *Workflow) TaskID(name string) (int, bool) {
	id, ok := w.taskIDs[name]
	return id, ok
}

// Plan is the built, schedulable model of a batch of workflows.
type Plan struct {
	Workers   int64
	Workflows []*Workflow

	// edges maps a task to its direct successors in declaration order.
	edges map[NodeKey][]NodeKey
	// workflowIDs maps workflow names to their dense ids.
	workflowIDs map[string]int
}

// NewPlan creates an empty plan for the given worker count.
func NewPlan(workers int64) *Plan {
	return &Plan{
		Workers:     workers,
		Workflows:   []*Workflow{},
		edges:       make(map[NodeKey][]NodeKey),
		workflowIDs: make(map[string]int),
	}
}

// AddWorkflow appends a workflow with the next dense id and returns it.
func (p *Plan) AddWorkflow(name string, scheduledAt int64) *Workflow {
	w := NewWorkflow(len(p.Workflows), name, scheduledAt)
	p.Workflows = append(p.Workflows, w)
	p.workflowIDs[name] = w.ID
	return w
}

// WorkflowID resolves a workflow name.
func (p *Plan) WorkflowID(name string) (int, bool) {
	id, ok := p.workflowIDs[name]
	return id, ok
}

// AddEdge registers a dependency edge: to cannot start before from completes.
// The caller is responsible for the indegree bookkeeping.
func (p *Plan) AddEdge(from, to NodeKey) {
	p.edges[from] = append(p.edges[from], to)
}

// Successors returns the direct successors of key in registration order.
func (p *Plan) Successors(key NodeKey) []NodeKey {
	return p.edges[key]
}

// Task returns the task addressed by key, or nil if it does not exist.
func (p *Plan) Task(key NodeKey) *Task {
	if key.Workflow < 0 || key.Workflow >= len(p.Workflows) {
		return nil
	}
	tasks := p.Workflows[key.Workflow].Tasks
	if key.Task < 0 || key.Task >= len(tasks) {
		return nil
	}
	return tasks[key.Task]
}

// TaskCount returns the number of tasks across all workflows.
func (p *Plan) TaskCount() int {
	n := 0
	for _, w := range p.Workflows {
		n += len(w.Tasks)
	}
	return n
}

// EdgeCount returns the number of registered dependency edges.
func (p *Plan) EdgeCount() int {
	n := 0
	for _, succ := range p.edges {
		n += len(succ)
	}
	return n
}

// EachTask calls fn for every task in workflow then declaration order.
func (p *Plan) EachTask(fn func(t *Task)) {
	for _, w := range p.Workflows {
		for _, t := range w.Tasks {
			fn(t)
		}
	}
}
