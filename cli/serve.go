// ABOUTME: HTTP API and TUI subcommands
// ABOUTME: Long-running front ends over the action service
package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/tui"
	"github.com/harperreed/outreach/web"
)

func newServeCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := app.Config.HTTPAddr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return web.NewServer(app.Service, app.owner(cmd), app.Log).Start(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	return cmd
}

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive action dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(app.Service, tui.Options{
				Owner: app.owner(cmd),
				OnComplete: func(done *actions.Completion) {
					app.Log.WithField("action_id", done.ActionID).Debug("action completed")
				},
				OnNewLead: func(lead *models.Lead) {
					app.Log.WithField("lead_id", lead.ID).Debug("lead created")
				},
			})
		},
	}
}
