package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/shoecheck/internal/config"
	"github.com/nao1215/shoecheck/internal/crawler"
	"github.com/nao1215/shoecheck/internal/fetch"
	applog "github.com/nao1215/shoecheck/internal/log"
	"github.com/nao1215/shoecheck/internal/model"
	"github.com/nao1215/shoecheck/internal/pipeline"
	"github.com/nao1215/shoecheck/internal/probe"
	"github.com/nao1215/shoecheck/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [base-url]",
		Short: "Check the shoe listings and the email reminder form",
		Long: `Check loads the site root, follows every month link in the navigation and
verifies each shoe listing on the month page:
- Does the listing have a description (blurb)?
- Does its image URL answer a HEAD request?
- Does it have a price?

Afterwards one signup is posted to the email reminder endpoint. Only an
HTTP 200 answer counts as a successful signup.

Examples:
  # Check the default site
  shoecheck check

  # Check another deployment
  shoecheck check http://localhost:8080

  # Pace requests and print a summary table
  shoecheck check --delay 500ms --summary

  # Write a Markdown report
  shoecheck check --markdown -o report.md

Configuration file (.shoecheck) example:
  base_url: "http://shoestore-manheim.rhcloud.com"
  crawl_delay: 500ms
  reminder:
    email: "someone@example.com"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheckCmd,
	}

	// Site flags
	cmd.Flags().StringP("base-url", "u", "",
		"Site root to check (default "+config.DefaultBaseURL+")")
	cmd.Flags().String("reminder-path", "",
		"Path of the email reminder endpoint (default "+config.DefaultReminderPath+")")
	cmd.Flags().String("email", "",
		"Address submitted to the email reminder form")

	// Request flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request (0 keeps the platform defaults)")
	cmd.Flags().DurationP("delay", "d", config.DefaultCrawlDelay,
		"Minimum delay between two requests")
	cmd.Flags().String("user-agent", "",
		"User-Agent header sent with every request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum number of bytes read from each page")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .shoecheck in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report instead of plain text")
	cmd.Flags().BoolP("summary", "s", false,
		"Append a per-month summary table")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCheck(ctx, cfg, logger, cmd.OutOrStdout(),
		fetch.WithHTTPClient(newHTTPClient(cfg.Timeout, logger)))
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the config file, the environment and the
// command line, in increasing priority.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly requested file must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	env.Apply(cfg)

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.BaseURL = args[0]
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// applyFlags copies the flags the user actually set onto cfg.
// Unset flags never override file or environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	strs := []struct {
		name string
		dst  *string
	}{
		{"base-url", &cfg.BaseURL},
		{"reminder-path", &cfg.ReminderPath},
		{"email", &cfg.ReminderEmail},
		{"user-agent", &cfg.UserAgent},
	}
	for _, s := range strs {
		if !flags.Changed(s.name) {
			continue
		}
		v, err := flags.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	var err error
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("delay") {
		if cfg.CrawlDelay, err = flags.GetDuration("delay"); err != nil {
			return err
		}
	}
	if flags.Changed("max-body-size") {
		if cfg.MaxBodySize, err = flags.GetInt64("max-body-size"); err != nil {
			return err
		}
	}

	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.Summary, err = flags.GetBool("summary"); err != nil {
		return err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return err
	}

	return nil
}

// maxRedirects is the number of redirects followed for a single request.
const maxRedirects = 10

// newHTTPClient creates the client used for every request of a run.
// Redirects are logged and stop after maxRedirects hops.
func newHTTPClient(timeout time.Duration, logger *slog.Logger) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			logger.Debug("following redirect", "from", via[len(via)-1].URL.String(), "to", req.URL.String())
			return nil
		},
	}
}

// setupLogger creates the structured logger. Logs go to stderr so the
// report on stdout stays clean.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return applog.NewSecureLogger(w, verbose)
}

// runCheck performs one verification run and writes the report.
// A run that completes returns nil whatever the check results are;
// failures to reach the site are part of the report.
// clientOpts are applied after the options derived from cfg.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer, clientOpts ...fetch.Option) error {
	parser, err := crawler.NewParser(cfg.Selectors)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if !cfg.MarkdownReport {
		if _, err := io.WriteString(stdout, report.Banner); err != nil {
			return err
		}
	}

	opts := []fetch.Option{
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithDelay(cfg.CrawlDelay),
		fetch.WithLogger(logger),
	}
	client := fetch.NewClient(cfg.Timeout, append(opts, clientOpts...)...)

	p := createPipeline(cfg, client, parser, logger)

	runReport := model.NewRunReport(cfg.BaseURL)
	runErr := p.Execute(ctx, runReport)
	if runErr != nil {
		logger.Warn("run interrupted, writing partial report", "error", runErr)
	}

	if err := outputReport(cfg, runReport, stdout); err != nil {
		return err
	}

	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	return nil
}

// createPipeline wires the month walk and the signup probe.
// The pipeline continues after a failed step so that an unreachable site
// root still gets its reminder endpoint checked.
func createPipeline(cfg *config.Config, client *fetch.Client, parser *crawler.Parser, logger *slog.Logger) *pipeline.Pipeline {
	images := probe.NewImageProber(client, logger)
	walker := crawler.NewWalker(cfg.BaseURL, client, images, parser,
		crawler.WithWalkerLogger(logger),
	)
	signup := probe.NewSignupProber(client, cfg.ReminderURL(), cfg.ReminderEmail, logger)

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewMonthStep(walker, pipeline.WithMonthLogger(logger)),
		pipeline.NewSignupStep(signup, pipeline.WithSignupLogger(logger)),
	)
	return p
}

// outputReport writes the report in the requested format.
func outputReport(cfg *config.Config, runReport *model.RunReport, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writers := make([]report.Writer, 0, 2)
	if cfg.MarkdownReport {
		writers = append(writers, report.NewMarkdownWriter(output))
	} else {
		writers = append(writers, report.NewSimpleWriter(output))
	}
	if cfg.Summary {
		writers = append(writers, report.NewSummaryWriter(output))
	}

	_, err := report.NewMultiWriter(writers...).Write(runReport)
	return err
}
