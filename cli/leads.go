// ABOUTME: Lead CLI commands
// ABOUTME: Add, list, show, status, reassign and delete leads
package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/db"
)

func parseLeadID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation(fmt.Sprintf("invalid lead id %q", raw))
	}
	return id, nil
}

func newLeadCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Manage leads",
	}
	cmd.AddCommand(
		newLeadAddCommand(app),
		newLeadListCommand(app),
		newLeadShowCommand(app),
		newLeadStatusCommand(app),
		newLeadReassignCommand(app),
		newLeadDeleteCommand(app),
	)
	return cmd
}

func newLeadAddCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a lead",
		Long: `Add a lead.

Examples:
  outreach lead add --name "Ava Chen" --source cold_outreach --phone 555-0100
  outreach lead add --name "Bo" --source social_media --instagram @bo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := actions.LeadInput{OwnerID: app.owner(cmd)}
			in.Name, _ = cmd.Flags().GetString("name")
			in.LeadSource, _ = cmd.Flags().GetString("source")
			in.Status, _ = cmd.Flags().GetString("status")
			in.Email, _ = cmd.Flags().GetString("email")
			in.Phone, _ = cmd.Flags().GetString("phone")
			in.Instagram, _ = cmd.Flags().GetString("instagram")
			in.Facebook, _ = cmd.Flags().GetString("facebook")
			in.Notes, _ = cmd.Flags().GetString("notes")

			lead, err := app.Service.AddLead(cmd.Context(), in)
			if err != nil {
				return err
			}
			printSuccess(app.out(), "Created lead: %s (ID: %s)", lead.Name, lead.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "lead name (required)")
	cmd.Flags().String("source", "", "lead source: social_media, cold_outreach, referral, website, event, other (required)")
	cmd.Flags().String("status", "", "initial status (default new)")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("instagram", "", "Instagram handle or URL")
	cmd.Flags().String("facebook", "", "Facebook profile URL")
	cmd.Flags().String("notes", "", "free-form notes")
	return cmd
}

func newLeadListCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := db.LeadFilter{OwnerID: app.owner(cmd)}
			filter.Status, _ = cmd.Flags().GetString("status")
			filter.Source, _ = cmd.Flags().GetString("source")
			filter.Query, _ = cmd.Flags().GetString("query")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			leads, err := app.Service.FindLeads(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(leads) == 0 {
				_, _ = fmt.Fprintln(app.out(), "No leads found.")
				return nil
			}

			w := newTable(app.out())
			_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSOURCE\tOWNER\tPHONE")
			_, _ = fmt.Fprintln(w, "--\t----\t------\t------\t-----\t-----")
			for _, l := range leads {
				owner := l.OwnerID
				if l.AssignedTo != "" {
					owner = l.AssignedTo
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					l.ID.String()[:8], l.Name, l.Status, l.LeadSource, orDash(owner), orDash(l.Phone))
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("status", "", "filter by status")
	cmd.Flags().String("source", "", "filter by lead source")
	cmd.Flags().String("query", "", "search name, email or phone")
	cmd.Flags().Int("limit", 50, "maximum leads to show")
	return cmd
}

func newLeadShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <lead-id>",
		Short: "Show a lead with its actions, activity, bookings and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseLeadID(args[0])
			if err != nil {
				return err
			}
			lead, err := app.Service.GetLead(ctx, id)
			if err != nil {
				return err
			}
			list, err := app.Service.ForLead(ctx, id)
			if err != nil {
				return err
			}
			activities, err := app.Service.ListActivities(ctx, id)
			if err != nil {
				return err
			}
			bookings, err := app.Service.ListBookings(ctx, id)
			if err != nil {
				return err
			}
			tasks, err := app.Service.ListTasks(ctx, db.TaskFilter{LeadID: &id})
			if err != nil {
				return err
			}

			out := app.out()
			printHeading(out, lead.Name)
			_, _ = fmt.Fprintf(out, "ID:        %s\n", lead.ID)
			_, _ = fmt.Fprintf(out, "Status:    %s\n", lead.Status)
			_, _ = fmt.Fprintf(out, "Source:    %s\n", lead.LeadSource)
			_, _ = fmt.Fprintf(out, "Owner:     %s\n", orDash(lead.OwnerID))
			if lead.AssignedTo != "" {
				_, _ = fmt.Fprintf(out, "Assigned:  %s (since %s)\n", lead.AssignedTo, formatDayPtr(lead.ReassignedAt))
			}
			_, _ = fmt.Fprintf(out, "Email:     %s\n", orDash(lead.Email))
			_, _ = fmt.Fprintf(out, "Phone:     %s\n", orDash(lead.Phone))
			if lead.HasSocialLink() {
				_, _ = fmt.Fprintf(out, "Instagram: %s\n", orDash(lead.Instagram))
				_, _ = fmt.Fprintf(out, "Facebook:  %s\n", orDash(lead.Facebook))
			}

			_, _ = fmt.Fprintln(out)
			printHeading(out, "NEXT ACTIONS")
			printActions(out, list)

			if len(activities) > 0 {
				_, _ = fmt.Fprintln(out)
				printHeading(out, "ACTIVITY")
				w := newTable(out)
				for _, a := range activities {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						formatDay(a.OccurredAt), a.ActivityType, orDash(a.Outcome), a.Notes)
				}
				_ = w.Flush()
			}

			if len(bookings) > 0 {
				_, _ = fmt.Fprintln(out)
				printHeading(out, "BOOKINGS")
				w := newTable(out)
				for _, b := range bookings {
					_, _ = fmt.Fprintf(w, "booked %s\tshoot %s\t%s\n",
						formatDay(b.BookedAt), formatDayPtr(b.ShootDate), b.Notes)
				}
				_ = w.Flush()
			}

			if len(tasks) > 0 {
				_, _ = fmt.Fprintln(out)
				printHeading(out, "TASKS")
				printTasks(out, tasks)
			}
			return nil
		},
	}
}

func newLeadStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <lead-id> <status>",
		Short: "Change a lead's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLeadID(args[0])
			if err != nil {
				return err
			}
			if err := app.Service.UpdateLeadStatus(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			printSuccess(app.out(), "Lead %s is now %s", args[0], args[1])
			return nil
		},
	}
}

func newLeadReassignCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reassign <lead-id> <salesperson>",
		Short: "Reassign a lead to another salesperson",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLeadID(args[0])
			if err != nil {
				return err
			}
			if err := app.Service.ReassignLead(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			printSuccess(app.out(), "Lead %s reassigned to %s", args[0], args[1])
			return nil
		},
	}
}

func newLeadDeleteCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <lead-id>",
		Short: "Delete a lead and everything logged against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLeadID(args[0])
			if err != nil {
				return err
			}
			lead, err := app.Service.GetLead(cmd.Context(), id)
			if err != nil {
				return err
			}
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				if !confirm(os.Stdin, app.out(), fmt.Sprintf("Delete %s and all of their history?", lead.Name)) {
					_, _ = fmt.Fprintln(app.out(), "Cancelled.")
					return nil
				}
			}
			if err := app.Service.DeleteLead(cmd.Context(), id); err != nil {
				return err
			}
			printSuccess(app.out(), "Deleted lead %s", lead.Name)
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}
