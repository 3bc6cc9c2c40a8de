package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/shoecheck/internal/model"
)

// Banner is printed before the crawl starts.
const Banner = "Loading data from site...\n"

// SimpleWriter outputs the console report: one block per month with a line
// per check, followed by the reminder signup result.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n\n\n")

	for _, e := range report.Errors {
		fmt.Fprintf(&sb, "Error: %s\n\n\n\n", e.Message)
	}

	for _, m := range report.Months {
		w.writeMonth(&sb, m)
	}

	if report.Signup != nil {
		w.writeSignup(&sb, report.Signup)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeMonth writes a month heading and its listings.
func (w *SimpleWriter) writeMonth(sb *strings.Builder, m *model.MonthReport) {
	if m.Failed() {
		fmt.Fprintf(sb, "%s - Page Unavailable: %v\n\n\n\n", m.Label, m.FetchErr)
		return
	}

	if m.ListingCount == 0 {
		fmt.Fprintf(sb, "%s - 0 Items\n\n\n\n", m.Label)
		return
	}

	fmt.Fprintf(sb, "%s - %d Items\n\n", m.Label, m.ListingCount)

	for _, l := range m.Listings {
		fmt.Fprintf(sb, "\t%s - %s\n", l.Listing.Brand, l.Listing.Name)

		if l.Malformed() {
			fmt.Fprintf(sb, "\tListing Incomplete:  %v\n", l.Err)
		} else {
			fmt.Fprintf(sb, "\tDoes Blurb Exist:  %s\n", yesNo(l.Result.DescriptionPresent))
			fmt.Fprintf(sb, "\tDoes Image Exist:  %s\n", yesNo(l.Result.ImageReachable))
			fmt.Fprintf(sb, "\tDoes Price Exist:  %s\n", yesNo(l.Result.PricePresent))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n\n")
}

// writeSignup writes the reminder signup line.
func (w *SimpleWriter) writeSignup(sb *strings.Builder, s *model.SignupOutcome) {
	switch {
	case !s.Responded():
		fmt.Fprintf(sb, "The Email Reminder was unsuccessful.  No response: %v\n\n\n\n", s.Err)
	case s.Success:
		fmt.Fprintf(sb, "The Email Reminder was successful.  StatusCode: %d (%s)\n\n\n\n", s.StatusCode, s.StatusText)
	default:
		fmt.Fprintf(sb, "The Email Reminder was unsuccessful.  StatusCode: %d (%s)\n\n\n\n", s.StatusCode, s.StatusText)
	}
}
