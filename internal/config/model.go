package config

// Document is the unified, format-agnostic representation of one scheduling
// request: the worker pool size and the workflows to place on it.
type Document struct {
	WorkersCount int64
	Workflows    []*Workflow
}

// Workflow is the format-agnostic representation of a workflow declaration.
type Workflow struct {
	Name        string
	ScheduledAt int64
	Tasks       []*Task
}

// Task is the format-agnostic representation of a task declaration.
// Dependencies name sibling tasks in the same workflow.
type Task struct {
	Name         string
	Description  string
	Cost         int64
	Dependencies []string
}

// TaskCount returns the number of declared tasks across all workflows.
func (d *Document) TaskCount() int {
	n := 0
	for _, w := range d.Workflows {
		n += len(w.Tasks)
	}
	return n
}
