package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".shoecheck"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// EnvPrefix is the prefix of every environment variable read by LoadEnv.
const EnvPrefix = "SHOECHECK"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .shoecheck configuration file.
type File struct {
	// BaseURL overrides the site to check.
	BaseURL string `yaml:"base_url,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// Timeout overrides the per-request timeout (e.g. "30s").
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// CrawlDelay overrides the spacing between requests (e.g. "500ms").
	CrawlDelay time.Duration `yaml:"crawl_delay,omitempty"`

	// MaxBodySize overrides how many body bytes are read per page.
	MaxBodySize int64 `yaml:"max_body_size,omitempty"`

	// Reminder configures the reminder endpoint smoke test.
	Reminder ReminderFile `yaml:"reminder,omitempty"`

	// Selectors overrides individual page selectors.
	Selectors Selectors `yaml:"selectors,omitempty"`
}

// ReminderFile is the reminder section of the configuration file.
type ReminderFile struct {
	Path  string `yaml:"path,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Apply copies every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.Timeout != 0 {
		cfg.Timeout = f.Timeout
	}
	if f.CrawlDelay != 0 {
		cfg.CrawlDelay = f.CrawlDelay
	}
	if f.MaxBodySize != 0 {
		cfg.MaxBodySize = f.MaxBodySize
	}
	if f.Reminder.Path != "" {
		cfg.ReminderPath = f.Reminder.Path
	}
	if f.Reminder.Email != "" {
		cfg.ReminderEmail = f.Reminder.Email
	}
	cfg.Selectors = cfg.Selectors.Merge(f.Selectors)
}

// LoadConfigFile loads a configuration file in YAML format.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .shoecheck in the current directory
// 3. Look for .shoecheck in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Env holds the SHOECHECK_* environment overrides.
// Unset variables leave the zero value (or nil) so they do not override
// values coming from the configuration file.
type Env struct {
	BaseURL       string         `envconfig:"BASE_URL"`
	ReminderPath  string         `envconfig:"REMINDER_PATH"`
	ReminderEmail string         `envconfig:"REMINDER_EMAIL"`
	UserAgent     string         `envconfig:"USER_AGENT"`
	Timeout       *time.Duration `envconfig:"TIMEOUT"`
	CrawlDelay    *time.Duration `envconfig:"CRAWL_DELAY"`
	MaxBodySize   *int64         `envconfig:"MAX_BODY_SIZE"`
}

// LoadEnv reads the SHOECHECK_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &env, nil
}

// Apply copies every variable that was set onto cfg.
func (e *Env) Apply(cfg *Config) {
	if e.BaseURL != "" {
		cfg.BaseURL = e.BaseURL
	}
	if e.ReminderPath != "" {
		cfg.ReminderPath = e.ReminderPath
	}
	if e.ReminderEmail != "" {
		cfg.ReminderEmail = e.ReminderEmail
	}
	if e.UserAgent != "" {
		cfg.UserAgent = e.UserAgent
	}
	if e.Timeout != nil {
		cfg.Timeout = *e.Timeout
	}
	if e.CrawlDelay != nil {
		cfg.CrawlDelay = *e.CrawlDelay
	}
	if e.MaxBodySize != nil {
		cfg.MaxBodySize = *e.MaxBodySize
	}
}
