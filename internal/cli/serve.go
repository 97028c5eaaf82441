package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/gridplan/internal/app"
	"github.com/specialistvlad/gridplan/internal/document"
	"github.com/spf13/cobra"
)

func (c *command) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduler over HTTP",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
	fs := cmd.Flags()
	fs.String("listen", ":8080", "HTTP listen address")
	fs.String("db", "", "SQLite database to store runs in; enables the read endpoints")
	fs.Int64("workers", app.NoWorkersOverride, "override workers_count of every request (-1 keeps it)")
	fs.Bool("allow-cycles", false, "schedule cyclic workflows instead of rejecting them")
	return cmd
}

func (c *command) runServe(cmd *cobra.Command, _ []string) error {
	// The server reads documents from requests, never from disk.
	c.v.Set("input", "-")
	c.v.Set("output", "-")
	cfg, err := c.appConfig("")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(ctx, c.stdout, c.stderr, cfg, document.NewLoader())
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx, Version)
}
