// ABOUTME: Rule configuration CLI commands
// ABOUTME: Lists and sets completion criteria for DM follow-up labels
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/ruleconfig"
)

func (a *App) rules() (*ruleconfig.Store, error) {
	if a.Rules == nil {
		return nil, apperr.Internal("rule store is not open", nil)
	}
	return a.Rules, nil
}

// ruleLabel accepts either a full label or a day count ("3" means the
// 3-day DM follow-up).
func ruleLabel(arg string) string {
	if days, err := strconv.Atoi(arg); err == nil && days > 0 {
		return engine.DMLabel(days)
	}
	return arg
}

func newRulesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Configure DM follow-up completion criteria",
		Long: `Configure what counts as handling a DM follow-up.

Criteria: any_outreach (default), engagement, conversation, booking.

Examples:
  outreach rules list
  outreach rules set 3 conversation
  outreach rules unset "DM Follow-up (Day 3)"`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the effective criterion for every DM follow-up",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.rules()
			if err != nil {
				return err
			}
			rules, err := store.Effective()
			if err != nil {
				return err
			}

			w := newTable(app.out())
			_, _ = fmt.Fprintln(w, "LABEL\tCRITERION\tUPDATED")
			_, _ = fmt.Fprintln(w, "-----\t---------\t-------")
			for _, r := range rules {
				criterion := r.Criterion
				if !r.Known() {
					criterion += " (unknown, treated as any_outreach)"
				}
				updated := "default"
				if !r.UpdatedAt.IsZero() {
					updated = formatDay(r.UpdatedAt)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Label, criterion, updated)
			}
			return w.Flush()
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <label|days> <criterion>",
		Short: "Set the criterion for a DM follow-up",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.rules()
			if err != nil {
				return err
			}
			rule, err := store.Set(ruleLabel(args[0]), args[1])
			if err != nil {
				return err
			}
			printSuccess(app.out(), "%s → %s", rule.Label, rule.Criterion)
			if !rule.Known() {
				printWarning(app.out(), "%q is not a known criterion; any_outreach applies", rule.Criterion)
			}
			return nil
		},
	}

	unsetCmd := &cobra.Command{
		Use:   "unset <label|days>",
		Short: "Restore the default criterion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.rules()
			if err != nil {
				return err
			}
			label := ruleLabel(args[0])
			if err := store.Delete(label); err != nil {
				return err
			}
			printSuccess(app.out(), "%s restored to default", label)
			return nil
		},
	}

	cmd.AddCommand(listCmd, setCmd, unsetCmd)
	return cmd
}
