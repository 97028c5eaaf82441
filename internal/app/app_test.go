package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/gridplan/internal/builder"
	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/document"
	"github.com/specialistvlad/gridplan/internal/hcl"
	"github.com/specialistvlad/gridplan/internal/model"
	"github.com/specialistvlad/gridplan/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoWorkflows = `{
	"workers_count": 2,
	"workflows": [
		{"name": "fast", "scheduled_at": 0, "tasks": [
			{"name": "only", "description": "", "cost": 3, "dependencies": []}
		]},
		{"name": "slow", "scheduled_at": 0, "tasks": [
			{"name": "first", "description": "", "cost": 5, "dependencies": []},
			{"name": "second", "description": "", "cost": 1, "dependencies": ["first"]}
		]}
	]
}`

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)
	loader, err := LoaderFor(appConfig.InputPath)
	require.NoError(t, err)

	var stdout, logs bytes.Buffer
	a, err := NewApp(context.Background(), &stdout, &logs, appConfig, loader)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, &stdout, &logs
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{InputPath: "in.json", OutputPath: "out.json", Workers: NoWorkersOverride, LogLevel: "DEBUG"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.ListenAddr)

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no input", cfg: Config{OutputPath: "o.json"}},
		{name: "no output", cfg: Config{InputPath: "i.json"}},
		{name: "negative workers", cfg: Config{InputPath: "i.json", OutputPath: "o.json", Workers: -2}},
		{name: "bad log level", cfg: Config{InputPath: "i.json", OutputPath: "o.json", LogLevel: "loud"}},
		{name: "bad log format", cfg: Config{InputPath: "i.json", OutputPath: "o.json", LogFormat: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoaderFor(t *testing.T) {
	for path, want := range map[string]config.Loader{
		"input.json": document.NewLoader(),
		"input.YAML": document.NewLoader(),
		"plan.hcl":   hcl.NewLoader(),
		t.TempDir():  hcl.NewLoader(),
	} {
		got, err := LoaderFor(path)
		require.NoError(t, err, path)
		assert.IsType(t, want, got, path)
	}

	_, err := LoaderFor("input.csv")
	assert.ErrorIs(t, err, document.ErrUnsupportedFormat)
}

func TestRun_WritesOutputAndSummary(t *testing.T) {
	input := writeInput(t, "input.json", twoWorkflows)
	output := filepath.Join(filepath.Dir(input), "output.json")
	a, stdout, _ := newTestApp(t, Config{InputPath: input, OutputPath: output, Workers: NoWorkersOverride, NoColor: true})

	require.NoError(t, a.Run(context.Background()))

	// fast.only: w1 [1,4]. slow.first: w2 [2,7]. slow.second: [7,8].
	// Spans 3 and 6; even count picks index 0.
	assert.Equal(t, "Median of Overall execution time of workflows : 3 seconds\n"+
		"Task schedule can be found in file "+output+"\n", stdout.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var out document.Output
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Workflows, 2)
	assert.Equal(t, "w2", out.Workflows[1].Tasks[0].Worker)
	assert.Equal(t, int64(8), out.Workflows[1].CompletedAt)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(a.Metrics().RunsTotal.WithLabelValues("completed", "")))
}

func TestSchedule_WorkerOverride(t *testing.T) {
	input := writeInput(t, "input.json", twoWorkflows)
	a, _, _ := newTestApp(t, Config{InputPath: input, OutputPath: "out.json", Workers: 1})

	doc, err := document.Decode([]byte(twoWorkflows), document.JSON)
	require.NoError(t, err)
	out, err := a.Schedule(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.Result.Workers)
	assert.Equal(t, scheduler.Completed, out.Result.Outcome)
	out.Plan.EachTask(func(task *model.Task) {
		assert.Equal(t, int64(1), task.WorkerID)
	})
	assert.False(t, out.Stored)
}

func TestRun_StalledRun(t *testing.T) {
	input := writeInput(t, "input.json", twoWorkflows)
	output := filepath.Join(filepath.Dir(input), "output.json")

	a, stdout, logs := newTestApp(t, Config{InputPath: input, OutputPath: output, Workers: 0, NoColor: true})
	require.NoError(t, a.Run(context.Background()), "stalled runs succeed unless strict")
	assert.Contains(t, stdout.String(), "Warning: 3 task(s) left unscheduled (no_workers): fast/only, slow/first, slow/second")
	assert.Contains(t, logs.String(), "Run stalled")
	_, err := os.Stat(output)
	assert.NoError(t, err, "the partial schedule is still written")

	strict, _, _ := newTestApp(t, Config{InputPath: input, OutputPath: output, Workers: 0, Strict: true, NoColor: true})
	err = strict.Run(context.Background())
	assert.ErrorIs(t, err, ErrStalled)
	var stalled *StalledError
	require.ErrorAs(t, err, &stalled)
	assert.Equal(t, "no_workers", stalled.Reason)
	assert.Equal(t, 3, stalled.Unscheduled)
}

func TestRun_InputErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")
	a, _, _ := newTestApp(t, Config{InputPath: missing, OutputPath: "out.json", Workers: NoWorkersOverride})
	assert.ErrorIs(t, a.Run(context.Background()), os.ErrNotExist)

	cyclic := writeInput(t, "input.json", `{"workers_count": 1, "workflows": [{"name": "w", "tasks": [
		{"name": "a", "cost": 1, "dependencies": ["b"]},
		{"name": "b", "cost": 1, "dependencies": ["a"]}]}]}`)
	b, _, _ := newTestApp(t, Config{InputPath: cyclic, OutputPath: "out.json", Workers: NoWorkersOverride})
	assert.ErrorIs(t, b.Run(context.Background()), builder.ErrCyclicDependency)
}

func TestRun_StoresRun(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, "input.yaml", "workers_count: 1\nworkflows:\n  - name: w\n    tasks:\n      - {name: a, cost: 2}\n")
	a, stdout, _ := newTestApp(t, Config{
		InputPath:  input,
		OutputPath: filepath.Join(dir, "output.yaml"),
		Workers:    NoWorkersOverride,
		DBPath:     filepath.Join(dir, "runs.db"),
		Table:      true,
		NoColor:    true,
	})

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, stdout.String(), "WORKFLOW")
	assert.Contains(t, stdout.String(), "Schedule stored as run ")

	runs, err := a.Store().ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(2), runs[0].Median)
}
