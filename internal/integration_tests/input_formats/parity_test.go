package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridplan/internal/app"
	"github.com/specialistvlad/gridplan/internal/document"
	"github.com/specialistvlad/gridplan/internal/testutil"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fanInJSON = `{
	"workers_count": 3,
	"workflows": [{
		"name": "fan-in",
		"scheduled_at": 2,
		"tasks": [
			{"name": "a", "description": "", "cost": 2, "dependencies": []},
			{"name": "b", "description": "", "cost": 4, "dependencies": []},
			{"name": "c", "description": "", "cost": 1, "dependencies": []},
			{"name": "join", "description": "merge", "cost": 3, "dependencies": ["a", "b", "c"]}
		]
	}]
}`

const fanInYAML = `
workers_count: 3
workflows:
  - name: fan-in
    scheduled_at: 2
    tasks:
      - {name: a, cost: 2}
      - {name: b, cost: 4}
      - {name: c, cost: 1}
      - name: join
        description: merge
        cost: 3
        dependencies: [a, b, c]
`

// The HCL rendition is split over two files of one directory.
var fanInHCL = map[string]string{
	"plan/workers.hcl": `
workers_count = 3

locals {
  start = 2
}
`,
	"plan/fan_in.hcl": `
workflow "fan-in" {
  scheduled_at = local.start

  task "a" { cost = 2 }
  task "b" { cost = 4 }
  task "c" { cost = 1 }

  task "join" {
    description = "merge"
    cost        = 3
    depends_on  = ["a", "b", "c"]
  }
}
`,
}

// c [2,3] w1, a [3,5] w1, b [4,8] w2, join [8,11] w1
var fanInWant = &document.Output{Workflows: []document.OutputWorkflow{{
	Name:        "fan-in",
	ScheduledAt: 2,
	CompletedAt: 11,
	Tasks: []document.OutputTask{
		{Name: "a", StartedAt: 3, CompletedAt: 5, Worker: "w1"},
		{Name: "b", StartedAt: 4, CompletedAt: 8, Worker: "w2"},
		{Name: "c", StartedAt: 2, CompletedAt: 3, Worker: "w1"},
		{Name: "join", StartedAt: 8, CompletedAt: 11, Worker: "w1"},
	},
}}}

// Test for: JSON, YAML and HCL inputs describing the same batch produce the
// same schedule.
func TestInputFormats_Parity(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		input string
	}{
		{name: "json", files: map[string]string{"input.json": fanInJSON}, input: "input.json"},
		{name: "yaml", files: map[string]string{"input.yaml": fanInYAML}, input: "input.yaml"},
		{name: "hcl directory", files: fanInHCL, input: "plan"},
		{
			name:  "single hcl file",
			files: map[string]string{"plan.hcl": fanInHCL["plan/workers.hcl"] + fanInHCL["plan/fan_in.hcl"]},
			input: "plan.hcl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunApp(t, tt.files, tt.input, nil)

			require.NoError(t, result.Err)
			if diff := cmp.Diff(fanInWant, testutil.ReadOutput(t, result.OutputPath)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			require.Contains(t, result.Stdout, "Median of Overall execution time of workflows : 9 seconds")
		})
	}
}

// Test for: the output format follows the output file extension.
func TestInputFormats_YAMLOutput(t *testing.T) {
	result := testutil.RunApp(t, map[string]string{"input.json": fanInJSON}, "input.json", func(cfg *app.Config) {
		cfg.OutputPath = filepath.Join(filepath.Dir(cfg.InputPath), "schedule.yml")
	})
	require.NoError(t, result.Err)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	var got document.Output
	require.NoError(t, yaml.Unmarshal(data, &got))
	if diff := cmp.Diff(fanInWant, &got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
