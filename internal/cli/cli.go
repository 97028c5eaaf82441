package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/gridplan/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
	ExitStalled = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps an error from a command to a process exit code.
func exitCode(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if errors.Is(err, app.ErrStalled) {
		return &ExitError{Code: ExitStalled, Message: err.Error(), Err: err}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error(), Err: err}
}

// command carries the state shared by every subcommand of one invocation.
type command struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

// Execute runs the command line in args and returns nil or an *ExitError.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return exitCode(err)
	}
	return nil
}

// NewRootCommand builds the command tree. The root command itself behaves
// like `run`.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &command{v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "gridplan [INPUT]",
		Short: "gridplan - offline list scheduler for DAG workflows",
		Long: `gridplan places every task of a batch of workflows on a fixed pool of
identical workers, writes the resulting schedule and prints the median
workflow execution time.

INPUT is a .json, .yaml or .yml document, a .hcl file, or a directory of
.hcl files. It defaults to input.json.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
		RunE:              c.runBatch,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file path (default: ./gridplan.yaml)")
	pf.String("log-level", "info", "log level: debug | info | warn | error")
	pf.String("log-format", "text", "log format: text | json")
	pf.Bool("no-color", false, "disable colored console output")

	addRunFlags(root.Flags())

	root.AddCommand(
		c.newRunCmd(),
		c.newServeCmd(),
		c.newInitCmd(),
		c.newVersionCmd(),
	)
	return root
}

// initConfig loads the config file and environment into the command's
// viper instance, then binds the flags of the command being executed.
func (c *command) initConfig(cmd *cobra.Command, _ []string) error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		c.v.SetConfigName("gridplan")
		c.v.SetConfigType("yaml")
		c.v.AddConfigPath(".")
	}
	c.v.SetEnvPrefix("GRIDPLAN")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case errors.Is(err, os.ErrNotExist) && cmd.Name() == "init":
		default:
			return &ExitError{Code: ExitUsage, Message: fmt.Sprintf("error reading config file: %v", err), Err: err}
		}
	} else {
		slog.Debug("Config file loaded.", "path", c.v.ConfigFileUsed())
	}

	var bindErr error
	bind := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if bindErr == nil {
				bindErr = c.v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
			}
		})
	}
	bind(cmd.InheritedFlags())
	bind(cmd.LocalFlags())
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}
	return nil
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "input.json", "input document, .hcl file or directory of .hcl files")
	fs.StringP("output", "o", "output.json", "output document (.json, .yaml or .yml)")
	fs.Int64("workers", app.NoWorkersOverride, "override workers_count of the input (-1 keeps it)")
	fs.Bool("strict", false, "exit with code 3 when tasks are left unscheduled")
	fs.Bool("allow-cycles", false, "schedule cyclic workflows instead of rejecting them")
	fs.String("db", "", "SQLite database to store the run in (disabled when empty)")
	fs.Bool("table", false, "print a per-workflow summary table")
}

// appConfig builds the validated application config from the merged
// settings. input, when non-empty, takes precedence over the input setting.
func (c *command) appConfig(input string) (*app.Config, error) {
	if input == "" {
		input = c.v.GetString("input")
	}
	cfg, err := app.NewConfig(app.Config{
		InputPath:   input,
		OutputPath:  c.v.GetString("output"),
		Workers:     c.v.GetInt64("workers"),
		AllowCycles: c.v.GetBool("allow_cycles"),
		Strict:      c.v.GetBool("strict"),
		DBPath:      c.v.GetString("db"),
		ListenAddr:  c.v.GetString("listen"),
		LogFormat:   c.v.GetString("log_format"),
		LogLevel:    c.v.GetString("log_level"),
		NoColor:     c.v.GetBool("no_color"),
		Table:       c.v.GetBool("table"),
	})
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	}
	slog.Debug("CLI configuration resolved.", "config", cfg)
	return cfg, nil
}
