// ABOUTME: Activity, booking and task CLI commands
// ABOUTME: Logs what happened with a lead and manages manual tasks
package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

func newActivityCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log and list lead activity",
	}

	logCmd := &cobra.Command{
		Use:   "log <lead-id>",
		Short: "Log a call, text, email, DM, engagement or note",
		Long: `Log an activity against a lead.

Examples:
  outreach activity log <lead-id> --type call --outcome no_response
  outreach activity log <lead-id> --type dm --at 2026-10-18T15:30:00-05:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := actions.ActivityInput{LeadID: args[0]}
			in.ActivityType, _ = cmd.Flags().GetString("type")
			in.Outcome, _ = cmd.Flags().GetString("outcome")
			in.OccurredAt, _ = cmd.Flags().GetString("at")
			in.Notes, _ = cmd.Flags().GetString("notes")

			activity, err := app.Service.LogActivity(cmd.Context(), in)
			if err != nil {
				return err
			}
			printSuccess(app.out(), "Logged %s on %s", activity.ActivityType, formatDay(activity.OccurredAt))
			return nil
		},
	}
	logCmd.Flags().String("type", "", "call, text, email, dm, engagement or note (required)")
	logCmd.Flags().String("outcome", "", "no_response, conversation, booked or not_interested")
	logCmd.Flags().String("at", "", "when it happened: YYYY-MM-DD or RFC3339 (default now)")
	logCmd.Flags().String("notes", "", "notes")

	listCmd := &cobra.Command{
		Use:   "list <lead-id>",
		Short: "List a lead's activity, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLeadID(args[0])
			if err != nil {
				return err
			}
			activities, err := app.Service.ListActivities(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				_, _ = fmt.Fprintln(app.out(), "No activity logged.")
				return nil
			}

			w := newTable(app.out())
			_, _ = fmt.Fprintln(w, "WHEN\tTYPE\tOUTCOME\tNOTES")
			_, _ = fmt.Fprintln(w, "----\t----\t-------\t-----")
			for _, a := range activities {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					a.OccurredAt.Format("2006-01-02 15:04"), a.ActivityType, orDash(a.Outcome), a.Notes)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(logCmd, listCmd)
	return cmd
}

func newBookingCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Record and list bookings",
	}

	addCmd := &cobra.Command{
		Use:   "add <lead-id>",
		Short: "Record a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := actions.BookingInput{LeadID: args[0]}
			in.BookedAt, _ = cmd.Flags().GetString("booked")
			in.ShootDate, _ = cmd.Flags().GetString("shoot")
			in.Notes, _ = cmd.Flags().GetString("notes")

			booking, err := app.Service.AddBooking(cmd.Context(), in)
			if err != nil {
				return err
			}
			printSuccess(app.out(), "Booked on %s (shoot %s)", formatDay(booking.BookedAt), formatDayPtr(booking.ShootDate))
			return nil
		},
	}
	addCmd.Flags().String("booked", "", "booking date (default today)")
	addCmd.Flags().String("shoot", "", "shoot date")
	addCmd.Flags().String("notes", "", "notes")

	listCmd := &cobra.Command{
		Use:   "list <lead-id>",
		Short: "List a lead's bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLeadID(args[0])
			if err != nil {
				return err
			}
			bookings, err := app.Service.ListBookings(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(bookings) == 0 {
				_, _ = fmt.Fprintln(app.out(), "No bookings.")
				return nil
			}

			w := newTable(app.out())
			_, _ = fmt.Fprintln(w, "BOOKED\tSHOOT\tNOTES")
			_, _ = fmt.Fprintln(w, "------\t-----\t-----")
			for _, b := range bookings {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", formatDay(b.BookedAt), formatDayPtr(b.ShootDate), b.Notes)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func newTaskCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage manual tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add <lead-id>",
		Short: "Add a manual task",
		Long: `Add a manual task to a lead. Tasks show up in the action list
and are completed like any other action.

Examples:
  outreach task add <lead-id> --title "Send pricing" --due 2026-10-20
  outreach task add <lead-id> --title "Call back" --due 2026-10-19 --time 14:00 --priority high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := actions.TaskInput{LeadID: args[0], OwnerID: app.owner(cmd)}
			in.Title, _ = cmd.Flags().GetString("title")
			in.DueDate, _ = cmd.Flags().GetString("due")
			in.DueTime, _ = cmd.Flags().GetString("time")
			in.Priority, _ = cmd.Flags().GetString("priority")

			task, err := app.Service.AddTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			printSuccess(app.out(), "Added task: %s (ID: %s)", task.Title, task.ID)
			return nil
		},
	}
	addCmd.Flags().String("title", "", "task title (required)")
	addCmd.Flags().String("due", "", "due date YYYY-MM-DD")
	addCmd.Flags().String("time", "", "due time HH:MM")
	addCmd.Flags().String("priority", "", "high, medium or low")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (open only unless --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := db.TaskFilter{Status: models.TaskStatusOpen, OwnerID: app.owner(cmd)}
			if all, _ := cmd.Flags().GetBool("all"); all {
				filter.Status = ""
			}
			if raw, _ := cmd.Flags().GetString("lead"); raw != "" {
				id, err := parseLeadID(raw)
				if err != nil {
					return err
				}
				filter.LeadID = &id
			}

			tasks, err := app.Service.ListTasks(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(app.out(), "No tasks.")
				return nil
			}
			printTasks(app.out(), tasks)
			return nil
		},
	}
	listCmd.Flags().Bool("all", false, "include completed tasks")
	listCmd.Flags().String("lead", "", "only tasks for this lead")

	doneCmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return apperr.Validation(fmt.Sprintf("invalid task id %q", args[0]))
			}
			done, err := app.Service.CompleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			printSuccess(app.out(), "Completed task %s (%s)", id, done.CompletedAt.Format("15:04"))
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, doneCmd)
	return cmd
}

func printTasks(w io.Writer, tasks []models.Task) {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tDUE\tPRIORITY\tSTATUS")
	_, _ = fmt.Fprintln(tw, "--\t-----\t---\t--------\t------")
	for _, t := range tasks {
		due := formatDayPtr(t.DueDate)
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, due, orDash(t.Priority), t.Status)
	}
	_ = tw.Flush()
}
