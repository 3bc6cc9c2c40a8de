package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/shoecheck/internal/model"
)

// Step is one stage of a verification run.
type Step interface {
	// Do runs the stage and writes its results into report.
	// Problems that belong in the report as outcomes (an unreachable image,
	// a rejected signup) are not errors. A returned error is recorded in
	// report.Errors under the step's name.
	Do(ctx context.Context, report *model.RunReport) error

	// Name identifies the step in logs, report.Errors and
	// report.PerformedSteps.
	Name() string
}

// Pipeline runs steps one after another against a single RunReport.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps later steps running after a step error.
	// Cancellation always stops the run.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError lets the remaining steps run after one fails.
// The check command sets it so that an unreachable site root still gets
// its reminder endpoint checked.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:  make([]Step, 0),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// AddSteps appends steps in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs every step in order and stamps report.FinishedAt on return.
//
// Without continueOnError the first step error is returned and the
// remaining steps are skipped. With it, Execute returns nil unless ctx is
// cancelled between steps; the cancellation is recorded against the step
// that did not get to run.
func (p *Pipeline) Execute(ctx context.Context, report *model.RunReport) error {
	defer func() {
		report.FinishedAt = time.Now()
	}()

	p.logger.Debug("starting run",
		"site", report.BaseURL,
		"step_count", p.StepCount(),
		"steps", p.StepNames(),
	)

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run cancelled", "next_step", step.Name(), "reason", err)
			report.AddError(step.Name(), err)
			return err
		}

		err := p.runStep(ctx, step, report)
		report.PerformedSteps = append(report.PerformedSteps, step.Name())

		if err != nil {
			report.AddError(step.Name(), err)
			if !p.continueOnError {
				return err
			}
		}
	}

	return nil
}

// runStep runs a single step and logs its outcome and duration.
func (p *Pipeline) runStep(ctx context.Context, step Step, report *model.RunReport) error {
	start := time.Now()
	p.logger.Info("executing step", "step", step.Name(), "site", report.BaseURL)

	err := step.Do(ctx, report)

	elapsed := time.Since(start)
	if err != nil {
		p.logger.Error("step failed", "step", step.Name(), "elapsed", elapsed, "error", err)
		return err
	}

	p.logger.Debug("step completed", "step", step.Name(), "elapsed", elapsed)
	return nil
}
