package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/shoecheck/internal/model"
)

// Step names as recorded in RunReport.PerformedSteps.
const (
	monthStepName  = "month_walk"
	signupStepName = "reminder_signup"
)

// MonthWalker walks every month page. *crawler.Walker satisfies it.
type MonthWalker interface {
	Walk(ctx context.Context) ([]*model.MonthReport, error)

	// Stats returns the request counters of the last walk.
	Stats() model.CrawlStats
}

// SignupChecker posts the reminder signup. *probe.SignupProber satisfies it.
type SignupChecker interface {
	Probe(ctx context.Context) *model.SignupOutcome
}

// MonthStep walks the month pages and adds their reports.
type MonthStep struct {
	walker MonthWalker
	logger *slog.Logger
}

// MonthStepOption configures a MonthStep.
type MonthStepOption func(*MonthStep)

// WithMonthLogger sets a custom logger for the month step.
func WithMonthLogger(logger *slog.Logger) MonthStepOption {
	return func(s *MonthStep) {
		s.logger = logger
	}
}

// NewMonthStep creates a month walking step.
func NewMonthStep(walker MonthWalker, opts ...MonthStepOption) *MonthStep {
	s := &MonthStep{
		walker: walker,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *MonthStep) Name() string {
	return monthStepName
}

// Do executes the month walk. Months finished before an error are still
// added to the report, together with the request counters; the error
// itself is returned so the pipeline can record it.
func (s *MonthStep) Do(ctx context.Context, report *model.RunReport) error {
	months, err := s.walker.Walk(ctx)
	for _, m := range months {
		report.AddMonth(m)
	}
	report.Crawl = s.walker.Stats()

	s.logger.Debug("month walk finished",
		"months", len(months),
		"pages_fetched", report.Crawl.PagesFetched,
		"pages_failed", report.Crawl.PagesFailed,
		"images_checked", report.Crawl.ImagesChecked,
		"error", err,
	)

	return err
}

// SignupStep probes the reminder endpoint.
type SignupStep struct {
	prober SignupChecker
	logger *slog.Logger
}

// SignupStepOption configures a SignupStep.
type SignupStepOption func(*SignupStep)

// WithSignupLogger sets a custom logger for the signup step.
func WithSignupLogger(logger *slog.Logger) SignupStepOption {
	return func(s *SignupStep) {
		s.logger = logger
	}
}

// NewSignupStep creates a reminder signup step.
func NewSignupStep(prober SignupChecker, opts ...SignupStepOption) *SignupStep {
	s := &SignupStep{
		prober: prober,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SignupStep) Name() string {
	return signupStepName
}

// Do executes the signup probe. It never fails; a missing response is part
// of the outcome.
func (s *SignupStep) Do(ctx context.Context, report *model.RunReport) error {
	report.Signup = s.prober.Probe(ctx)

	s.logger.Debug("reminder signup finished",
		"status", report.Signup.StatusCode,
		"success", report.Signup.Success,
	)

	return nil
}
