package document

// Input mirrors the input document. Required fields are pointers so that a
// missing field can be told apart from a zero value.
type Input struct {
	WorkersCount *int64           `json:"workers_count" yaml:"workers_count"`
	Workflows    []*InputWorkflow `json:"workflows" yaml:"workflows"`
}

// InputWorkflow is one entry of the `workflows` array.
type InputWorkflow struct {
	Name        *string      `json:"name" yaml:"name"`
	ScheduledAt int64        `json:"scheduled_at" yaml:"scheduled_at"`
	Tasks       []*InputTask `json:"tasks" yaml:"tasks"`
}

// InputTask is one entry of a workflow's `tasks` array.
type InputTask struct {
	Name         *string  `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Cost         *int64   `json:"cost" yaml:"cost"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

// Output is the schedule document.
type Output struct {
	Workflows []OutputWorkflow `json:"workflow" yaml:"workflow"`
}

// OutputWorkflow is the placement of one workflow.
type OutputWorkflow struct {
	Name        string       `json:"name" yaml:"name"`
	ScheduledAt int64        `json:"scheduled_at" yaml:"scheduled_at"`
	CompletedAt int64        `json:"completed_at" yaml:"completed_at"`
	Tasks       []OutputTask `json:"tasks" yaml:"tasks"`
}

// OutputTask is the placement of one task. Worker is "w<id>", or "w-1" for a
// task that was never placed.
type OutputTask struct {
	Name        string `json:"name" yaml:"name"`
	StartedAt   int64  `json:"started_at" yaml:"started_at"`
	CompletedAt int64  `json:"completed_at" yaml:"completed_at"`
	Worker      string `json:"worker" yaml:"worker"`
}
