// ABOUTME: Application configuration from the XDG config file, .env and environment
// ABOUTME: Later sources override earlier ones; Save writes the file layer back out

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/models"
	"github.com/joho/godotenv"
)

const (
	// AppName names the data directory under XDG_DATA_HOME.
	AppName = "outreach"

	// ConfigFileName is where we store local config.
	ConfigFileName = "config.json"

	DefaultHTTPAddr = ":8080"
)

// Config holds every tunable setting.
type Config struct {
	// DBPath is the sqlite entity store.
	DBPath string `json:"db_path,omitempty"`

	// RulesDir is the badger directory holding rule configuration.
	RulesDir string `json:"rules_dir,omitempty"`

	// Timezone is the business timezone that defines "today".
	Timezone string `json:"timezone,omitempty"`

	// DashboardLimit caps the multi-lead dashboard.
	DashboardLimit int `json:"dashboard_limit,omitempty"`

	// CheckinSuppression is any_outreach or conversation.
	CheckinSuppression string `json:"checkin_suppression,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
	HTTPAddr  string `json:"http_addr,omitempty"`

	// Owner is the default salesperson for dashboard views. Empty means everyone.
	Owner string `json:"owner,omitempty"`

	path string

	// stored is the file layer alone, without env or flag overrides.
	stored *Config
}

// DataDir returns the application data directory.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	dir := DataDir()
	return &Config{
		DBPath:             filepath.Join(dir, "outreach.db"),
		RulesDir:           filepath.Join(dir, "rules"),
		Timezone:           clock.DefaultTimezone,
		DashboardLimit:     engine.DefaultDashboardLimit,
		CheckinSuppression: models.CriterionAnyOutreach,
		LogLevel:           "info",
		LogFormat:          "text",
		HTTPAddr:           DefaultHTTPAddr,
	}
}

// Load reads the config file, then .env, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(filepath.Join(DataDir(), ConfigFileName), os.LookupEnv)
}

// LoadFrom reads the config at path (missing or unparsable files yield
// defaults) and applies overrides from lookup.
func LoadFrom(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if jsonErr := json.Unmarshal(data, &fileCfg); jsonErr == nil {
			cfg.merge(&fileCfg)
			cfg.stored = &fileCfg
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.RulesDir != "" {
		c.RulesDir = o.RulesDir
	}
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.DashboardLimit > 0 {
		c.DashboardLimit = o.DashboardLimit
	}
	if o.CheckinSuppression != "" {
		c.CheckinSuppression = o.CheckinSuppression
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.HTTPAddr != "" {
		c.HTTPAddr = o.HTTPAddr
	}
	if o.Owner != "" {
		c.Owner = o.Owner
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"OUTREACH_DB_PATH":             &c.DBPath,
		"OUTREACH_RULES_DIR":           &c.RulesDir,
		"OUTREACH_TIMEZONE":            &c.Timezone,
		"OUTREACH_CHECKIN_SUPPRESSION": &c.CheckinSuppression,
		"OUTREACH_LOG_LEVEL":           &c.LogLevel,
		"OUTREACH_LOG_FORMAT":          &c.LogFormat,
		"OUTREACH_HTTP_ADDR":           &c.HTTPAddr,
		"OUTREACH_OWNER":               &c.Owner,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("OUTREACH_DASHBOARD_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OUTREACH_DASHBOARD_LIMIT: %w", err)
		}
		c.DashboardLimit = n
	}
	return nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.DashboardLimit <= 0 {
		return fmt.Errorf("dashboard limit must be positive, got %d", c.DashboardLimit)
	}
	switch c.CheckinSuppression {
	case models.CriterionAnyOutreach, models.CriterionConversation:
	default:
		return fmt.Errorf("checkin suppression must be %s or %s, got %q",
			models.CriterionAnyOutreach, models.CriterionConversation, c.CheckinSuppression)
	}
	return nil
}

// Location resolves the business timezone.
func (c *Config) Location() (*time.Location, error) {
	return clock.LoadLocation(c.Timezone)
}

// Path is the file Save writes to.
func (c *Config) Path() string {
	if c.path == "" {
		return filepath.Join(DataDir(), ConfigFileName)
	}
	return c.path
}

// Stored returns a copy of what the config file itself holds. Changes
// made to it and saved leave env and flag overrides out of the file.
func (c *Config) Stored() *Config {
	s := &Config{}
	if c.stored != nil {
		*s = *c.stored
	}
	s.path = c.Path()
	s.stored = nil
	return s
}

// Save persists the config to disk.
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
