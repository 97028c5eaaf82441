package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigYAML = `# gridplan config
# Priority: CLI flag > GRIDPLAN_* environment variable > this file > default.

input:  "input.json"    # .json, .yaml, .yml, .hcl or a directory of .hcl files
output: "output.json"   # .json, .yaml or .yml

workers: -1             # overrides workers_count of the input; -1 keeps it
strict: false           # exit with code 3 when tasks are left unscheduled
allow_cycles: false     # schedule cyclic workflows instead of rejecting them
table: false            # print a per-workflow summary table

log_level:  "info"      # debug | info | warn | error
log_format: "text"      # text | json
no_color: false

# db: "gridplan.db"     # uncomment to store every run in SQLite
listen: ":8080"         # serve only
`

func (c *command) newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration.

If --config is given the file is written to that path, otherwise to
./gridplan.yaml. Fails if the file already exists unless --force is passed.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dest := c.cfgFile
			if dest == "" {
				dest = "gridplan.yaml"
			}

			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("mkdir: %w", err)
			}
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("stat %s: %w", dest, err)
				}
			}

			if err := os.WriteFile(dest, []byte(defaultConfigYAML), 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(c.stdout, "config written to %s\n", dest)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")
	return cmd
}
