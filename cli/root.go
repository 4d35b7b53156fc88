// ABOUTME: Root cobra command and entry point
// ABOUTME: Global flags open the stores before any subcommand runs
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the full command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "outreach",
		Short: "Next-best-action recommendations for sales leads",
		Long: `outreach tracks leads and tells each salesperson what to do next.

Examples:
  outreach lead add --name "Ava Chen" --source cold_outreach
  outreach actions next --owner amy
  outreach actions complete <action-id>
  outreach tui`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("db-path", "", "database path (default: $XDG_DATA_HOME/outreach/outreach.db)")
	flags.String("owner", "", "salesperson to scope dashboards to (default: configured owner)")
	flags.String("timezone", "", "business timezone, e.g. America/Chicago")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newLeadCommand(app),
		newActivityCommand(app),
		newBookingCommand(app),
		newTaskCommand(app),
		newActionsCommand(app),
		newRulesCommand(app),
		newConfigCommand(app),
		newVizCommand(app),
		newDashboardCommand(app),
		newMCPCommand(app),
		newServeCommand(app),
		newTUICommand(app),
	)

	return root
}

// Execute runs the CLI against os.Args.
func Execute(version string) error {
	app := &App{Version: version}
	root := NewRootCommand(app)
	err := root.Execute()
	if cerr := app.close(); err == nil {
		err = cerr
	}
	return err
}
