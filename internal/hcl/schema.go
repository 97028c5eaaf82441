package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is decoded from every file. Attributes stay unevaluated until the
// locals of all files are known.
type fileRoot struct {
	WorkersCount hcl.Expression   `hcl:"workers_count,optional"`
	Locals       []*localsBlock   `hcl:"locals,block"`
	Workflows    []*workflowBlock `hcl:"workflow,block"`
}

type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type workflowBlock struct {
	Name        string         `hcl:"name,label"`
	ScheduledAt hcl.Expression `hcl:"scheduled_at,optional"`
	Tasks       []*taskBlock   `hcl:"task,block"`
}

type taskBlock struct {
	Name        string         `hcl:"name,label"`
	Description hcl.Expression `hcl:"description,optional"`
	Cost        hcl.Expression `hcl:"cost"`
	DependsOn   []string       `hcl:"depends_on,optional"`
}
