package cli

import (
	"github.com/specialistvlad/gridplan/internal/app"
	"github.com/spf13/cobra"
)

func (c *command) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [INPUT]",
		Short: "Schedule a batch of workflows and write the schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runBatch,
	}
	addRunFlags(cmd.Flags())
	return cmd
}

func (c *command) runBatch(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	}
	cfg, err := c.appConfig(input)
	if err != nil {
		return err
	}

	loader, err := app.LoaderFor(cfg.InputPath)
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	}

	a, err := app.NewApp(cmd.Context(), c.stdout, c.stderr, cfg, loader)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(cmd.Context())
}
