package model

import "time"

// RunReport is the result of one verification run against a site.
// Pipeline steps fill it in; report writers render it.
type RunReport struct {
	// BaseURL is the site that was checked.
	BaseURL string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Months holds one report per navigation link, in navigation order.
	Months []*MonthReport

	// Signup is the reminder endpoint outcome. Nil if the step did not run.
	Signup *SignupOutcome

	// Errors collects step-level errors that did not stop the run,
	// such as an unreachable site root.
	Errors []StepError

	// Crawl counts the requests made by the month walk.
	Crawl CrawlStats

	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string
}

// NewRunReport creates an empty report for the given base URL.
func NewRunReport(baseURL string) *RunReport {
	return &RunReport{
		BaseURL:        baseURL,
		StartedAt:      time.Now(),
		Months:         make([]*MonthReport, 0),
		Errors:         make([]StepError, 0),
		PerformedSteps: make([]string, 0),
	}
}

// AddMonth appends a month report.
func (r *RunReport) AddMonth(m *MonthReport) {
	r.Months = append(r.Months, m)
}

// AddError records an error raised by the named step. Nil is ignored.
func (r *RunReport) AddError(step string, err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, StepError{Step: step, Message: err.Error()})
}

// StepError is an error recorded against the step that raised it.
type StepError struct {
	Step    string
	Message string
}

// CrawlStats counts the work done by the month walk.
type CrawlStats struct {
	// PagesFetched counts successful page retrievals, root included.
	PagesFetched int

	// PagesFailed counts page retrievals that failed or returned non-2xx.
	PagesFailed int

	// ImagesChecked counts image checks issued.
	ImagesChecked int
}

// Summary holds aggregate counts over a RunReport.
type Summary struct {
	Months             int
	UnreachableMonths  int
	Listings           int
	Malformed          int
	MissingDescription int
	MissingImage       int
	MissingPrice       int
	Passed             int
}

// Summary computes aggregate counts over all months.
func (r *RunReport) Summary() Summary {
	s := Summary{Months: len(r.Months)}
	for _, m := range r.Months {
		if m.Failed() {
			s.UnreachableMonths++
		}
		s.Listings += m.ListingCount
		for _, l := range m.Listings {
			if l.Malformed() {
				s.Malformed++
				continue
			}
			if !l.Result.DescriptionPresent {
				s.MissingDescription++
			}
			if !l.Result.ImageReachable {
				s.MissingImage++
			}
			if !l.Result.PricePresent {
				s.MissingPrice++
			}
			if l.Result.Passed() {
				s.Passed++
			}
		}
	}
	return s
}
