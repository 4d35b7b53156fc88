// ABOUTME: Shared application state for CLI commands
// ABOUTME: Opens the entity store, rule store and action service from config
package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/config"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/logging"
	"github.com/harperreed/outreach/ruleconfig"
)

// App is everything a command needs. Fields that are already set when a
// command runs are used as-is, which is how tests inject fixtures.
type App struct {
	Version string
	Config  *config.Config
	DB      *sql.DB
	Rules   *ruleconfig.Store
	Service *actions.Service
	Log     *logrus.Logger
	Out     io.Writer

	closers []func() error
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// loadConfig reads config and applies the global flag overrides.
func (a *App) loadConfig(cmd *cobra.Command) error {
	if a.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.Config = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("db-path") {
		a.Config.DBPath, _ = flags.GetString("db-path")
	}
	if flags.Changed("owner") {
		a.Config.Owner, _ = flags.GetString("owner")
	}
	if flags.Changed("timezone") {
		a.Config.Timezone, _ = flags.GetString("timezone")
	}
	if flags.Changed("log-level") {
		a.Config.LogLevel, _ = flags.GetString("log-level")
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if a.Log == nil {
		log, err := logging.New(a.Config.LogLevel, a.Config.LogFormat, os.Stderr)
		if err != nil {
			return err
		}
		a.Log = log
	}
	return nil
}

// open wires the stores and the service unless a service was injected.
func (a *App) open(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	if a.Service != nil {
		return nil
	}

	loc, err := a.Config.Location()
	if err != nil {
		return err
	}

	database, err := db.OpenDatabase(a.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = database
	a.closers = append(a.closers, database.Close)

	rules, err := ruleconfig.Open(a.Config.RulesDir)
	if err != nil {
		_ = a.close()
		return fmt.Errorf("failed to open rule store: %w", err)
	}
	a.Rules = rules
	a.closers = append(a.closers, rules.Close)

	eng := engine.New(clock.New(loc), nil)
	eng.DashboardLimit = a.Config.DashboardLimit
	eng.CheckinSuppression = a.Config.CheckinSuppression

	a.Service = actions.NewService(database, rules, eng, a.Log)
	a.Log.WithField("db", a.Config.DBPath).Debug("opened stores")
	return nil
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// owner resolves the --owner flag, falling back to the configured default.
func (a *App) owner(cmd *cobra.Command) string {
	if cmd.Flags().Changed("owner") {
		owner, _ := cmd.Flags().GetString("owner")
		return owner
	}
	if a.Config != nil {
		return a.Config.Owner
	}
	return ""
}
