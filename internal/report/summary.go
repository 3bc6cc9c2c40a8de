package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nao1215/shoecheck/internal/model"
)

// SummaryWriter outputs a table of per-month counts with a totals footer.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the table.
func (w *SummaryWriter) Write(report *model.RunReport) (int, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Month", "Items", "Passed", "No Blurb", "No Image", "No Price", "Incomplete", "Status"})

	for _, m := range report.Months {
		var noBlurb, noImage, noPrice int
		for _, l := range m.Listings {
			if l.Malformed() {
				continue
			}
			if !l.Result.DescriptionPresent {
				noBlurb++
			}
			if !l.Result.ImageReachable {
				noImage++
			}
			if !l.Result.PricePresent {
				noPrice++
			}
		}

		status := "ok"
		if m.Failed() {
			status = "unavailable"
		}

		t.AppendRow(table.Row{
			m.Label,
			m.ListingCount,
			m.PassedCount(),
			noBlurb,
			noImage,
			noPrice,
			m.MalformedCount(),
			status,
		})
	}

	s := report.Summary()
	t.AppendFooter(table.Row{
		"Total",
		s.Listings,
		s.Passed,
		s.MissingDescription,
		s.MissingImage,
		s.MissingPrice,
		s.Malformed,
		signupStatus(report.Signup),
	})

	t.SetCaption("pages fetched: %d, pages failed: %d, images checked: %d",
		report.Crawl.PagesFetched, report.Crawl.PagesFailed, report.Crawl.ImagesChecked)

	return w.output.Write([]byte(t.Render() + "\n"))
}

// signupStatus is the short form of the reminder result for the footer.
func signupStatus(s *model.SignupOutcome) string {
	switch {
	case s == nil:
		return "signup: skipped"
	case !s.Responded():
		return "signup: no response"
	case s.Success:
		return "signup: ok"
	default:
		return "signup: failed"
	}
}
