// ABOUTME: Next-action CLI commands
// ABOUTME: Shows the ranked dashboard or one lead's actions and completes actions by id
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/clock"
)

func newActionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "See and complete recommended actions",
	}

	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "Show today's top actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := app.owner(cmd)
			list := app.Service.Dashboard
			if all, _ := cmd.Flags().GetBool("all"); all {
				list = app.Service.AllActions
			}
			actions, err := list(cmd.Context(), owner)
			if err != nil {
				return err
			}

			title := "NEXT ACTIONS · " + clock.Today(app.Service.Clock()).Format("Mon Jan 2")
			if owner != "" {
				title += " · " + owner
			}
			printHeading(app.out(), title)
			printActions(app.out(), actions)
			return nil
		},
	}
	nextCmd.Flags().Bool("all", false, "show every action instead of the top of the list")

	leadCmd := &cobra.Command{
		Use:   "lead <lead-id>",
		Short: "Show every action for one lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLeadID(args[0])
			if err != nil {
				return err
			}
			actions, err := app.Service.ForLead(cmd.Context(), id)
			if err != nil {
				return err
			}
			printActions(app.out(), actions)
			return nil
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete <action-id>",
		Short: "Mark an action as done",
		Long: `Mark an action as done. Manual tasks are closed and engagement
actions log an engagement for today. Other action types are completed by
logging the underlying activity (outreach activity log).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := app.Service.CompleteByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSuccess(app.out(), "Completed %s action for lead %s", done.Type, done.LeadID)
			return nil
		},
	}

	cmd.AddCommand(nextCmd, leadCmd, completeCmd)
	return cmd
}

func newDashboardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show pipeline and workload statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderDashboard(cmd, app)
		},
	}
}
