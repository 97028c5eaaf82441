package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/gridplan/internal/app"
	"github.com/specialistvlad/gridplan/internal/document"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Stdout     string
	LogOutput  string
	Err        error
	Dir        string
	OutputPath string
	App        *app.App
}

// WriteFiles writes files, keyed by path relative to dir, creating any
// intermediate directories.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// RunApp writes files into a temporary directory and runs the batch
// pipeline on input, a path relative to that directory. The output
// document goes to output.json unless configure changes it. configure may
// be nil.
func RunApp(t *testing.T, files map[string]string, input string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	WriteFiles(t, dir, files)

	cfg := app.Config{
		InputPath:  filepath.Join(dir, input),
		OutputPath: filepath.Join(dir, "output.json"),
		Workers:    app.NoWorkersOverride,
		LogLevel:   "debug",
		LogFormat:  "text",
		NoColor:    true,
	}
	if configure != nil {
		configure(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	loader, err := app.LoaderFor(appConfig.InputPath)
	require.NoError(t, err)

	stdout, logs := &SafeBuffer{}, &SafeBuffer{}
	a, err := app.NewApp(context.Background(), stdout, logs, appConfig, loader)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	runErr := a.Run(context.Background())
	t.Cleanup(func() {
		if os.Getenv("GRIDPLAN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return &HarnessResult{
		Stdout:     stdout.String(),
		LogOutput:  logs.String(),
		Err:        runErr,
		Dir:        dir,
		OutputPath: appConfig.OutputPath,
		App:        a,
	}
}

// ReadOutput decodes the JSON output document of a run.
func ReadOutput(t *testing.T, path string) *document.Output {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out document.Output
	require.NoError(t, json.Unmarshal(data, &out))
	return &out
}
