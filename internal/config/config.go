package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the shoe store that is checked when nothing else is configured.
	DefaultBaseURL = "http://shoestore-manheim.rhcloud.com"

	// DefaultReminderPath is appended to the base URL to form the reminder endpoint.
	DefaultReminderPath = "/remind"

	// DefaultReminderEmail is the throwaway address submitted to the reminder form.
	// This is a smoke test, not a real signup.
	DefaultReminderEmail = "test153928647@gmail.com"

	// DefaultTimeout of zero means no explicit client timeout; the platform
	// defaults for dialing and TLS handshakes apply.
	DefaultTimeout time.Duration = 0

	// DefaultCrawlDelay of zero sends requests back to back.
	DefaultCrawlDelay time.Duration = 0

	// DefaultUserAgent identifies shoecheck in HTTP requests.
	DefaultUserAgent = "shoecheck/1.0 (+https://github.com/nao1215/shoecheck)"

	// DefaultMaxBodySize limits how much of a page body is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "shoecheck"
)

// Config holds all configuration options for a verification run.
// It is populated from defaults, the config file, the environment and CLI
// flags, then passed explicitly to the components that need it.
type Config struct {
	// BaseURL is the site root. Month hrefs and the reminder path are
	// concatenated onto it as plain strings.
	BaseURL string

	// ReminderPath is the path of the reminder endpoint, starting with "/".
	ReminderPath string

	// ReminderEmail is the address posted to the reminder endpoint.
	ReminderEmail string

	// Timeout is the per-request client timeout. Zero means none.
	Timeout time.Duration

	// CrawlDelay is the minimum spacing between two requests. Zero means none.
	CrawlDelay time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum number of body bytes read per page.
	MaxBodySize int64

	// Selectors describe where the crawler finds links and listing fields.
	Selectors Selectors

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicitly requested configuration file.
	// If empty, the default search locations are used.
	ConfigFilePath string

	// MarkdownReport writes the report as Markdown instead of plain text.
	MarkdownReport bool

	// Summary appends a per-month summary table to the plain text report.
	Summary bool

	// ReportFile is the output file path. Empty means stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		ReminderPath:  DefaultReminderPath,
		ReminderEmail: DefaultReminderEmail,
		Timeout:       DefaultTimeout,
		CrawlDelay:    DefaultCrawlDelay,
		UserAgent:     DefaultUserAgent,
		MaxBodySize:   DefaultMaxBodySize,
		Selectors:     DefaultSelectors(),
	}
}

// Normalize removes surrounding whitespace and any trailing slash from the
// base URL so that "/months/march" style hrefs concatenate cleanly.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.ReminderPath = strings.TrimSpace(c.ReminderPath)
	c.ReminderEmail = strings.TrimSpace(c.ReminderEmail)
}

// ReminderURL returns the reminder endpoint URL.
func (c *Config) ReminderURL() string {
	return c.BaseURL + c.ReminderPath
}

// XDGConfigDir returns the XDG config directory for shoecheck.
// On Linux: ~/.config/shoecheck
// On macOS: ~/Library/Application Support/shoecheck
// On Windows: %APPDATA%\shoecheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error, possibly wrapped
// with detail.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if !strings.HasPrefix(c.ReminderPath, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidReminderPath, c.ReminderPath)
	}

	if c.ReminderEmail == "" {
		return ErrNoReminderEmail
	}

	return c.Selectors.Validate()
}
