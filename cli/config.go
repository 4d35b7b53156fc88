// ABOUTME: Config CLI commands
// ABOUTME: Shows the effective settings and writes changes back to the config file
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/config"
)

// setConfigValue updates one setting by its file key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "db_path":
		cfg.DBPath = value
	case "rules_dir":
		cfg.RulesDir = value
	case "timezone":
		cfg.Timezone = value
	case "dashboard_limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return apperr.Validation(fmt.Sprintf("dashboard_limit must be a number, got %q", value))
		}
		cfg.DashboardLimit = n
	case "checkin_suppression":
		cfg.CheckinSuppression = value
	case "log_level":
		cfg.LogLevel = value
	case "log_format":
		cfg.LogFormat = value
	case "http_addr":
		cfg.HTTPAddr = value
	case "owner":
		cfg.Owner = value
	default:
		return apperr.Validation(fmt.Sprintf("unknown config key %q", key))
	}
	return nil
}

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		// Config commands never touch the stores.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.Config
			w := newTable(app.out())
			_, _ = fmt.Fprintf(w, "file\t%s\n", c.Path())
			_, _ = fmt.Fprintf(w, "db_path\t%s\n", c.DBPath)
			_, _ = fmt.Fprintf(w, "rules_dir\t%s\n", c.RulesDir)
			_, _ = fmt.Fprintf(w, "timezone\t%s\n", c.Timezone)
			_, _ = fmt.Fprintf(w, "dashboard_limit\t%d\n", c.DashboardLimit)
			_, _ = fmt.Fprintf(w, "checkin_suppression\t%s\n", c.CheckinSuppression)
			_, _ = fmt.Fprintf(w, "log_level\t%s\n", c.LogLevel)
			_, _ = fmt.Fprintf(w, "log_format\t%s\n", c.LogFormat)
			_, _ = fmt.Fprintf(w, "http_addr\t%s\n", c.HTTPAddr)
			_, _ = fmt.Fprintf(w, "owner\t%s\n", orDash(c.Owner))
			return w.Flush()
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored := app.Config.Stored()
			if err := setConfigValue(stored, args[0], args[1]); err != nil {
				return err
			}
			if err := setConfigValue(app.Config, args[0], args[1]); err != nil {
				return err
			}
			if err := app.Config.Validate(); err != nil {
				return apperr.Validation(err.Error())
			}
			if err := stored.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			printSuccess(app.out(), "%s = %s", args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(showCmd, setCmd)
	return cmd
}
