package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/shoecheck/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
// The returned count is the number of bytes the output accepted.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	out := &countingWriter{w: w.output}
	md := markdown.NewMarkdown(out)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeMonths(md, report)
	w.writeSignup(md, report)
	w.writeFooter(md)

	err := md.Build()
	return out.n, err
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Shoe Store Check Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.BaseURL + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Months", strconv.Itoa(len(report.Months))},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")

	for _, e := range report.Errors {
		md.Cautionf("`%s`: %s", e.Step, e.Message)
		md.PlainText("")
	}
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.RunReport) string {
	if len(report.Errors) > 0 {
		return "❌ Error - " + report.Errors[0].Message
	}
	return "✅ Complete"
}

// writeSummary writes the aggregate counts and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RunReport) {
	s := report.Summary()

	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Check", "Count"},
		Rows: [][]string{
			{"Listings", strconv.Itoa(s.Listings)},
			{"Passed", strconv.Itoa(s.Passed)},
			{"Missing blurb", strconv.Itoa(s.MissingDescription)},
			{"Missing image", strconv.Itoa(s.MissingImage)},
			{"Missing price", strconv.Itoa(s.MissingPrice)},
			{"Incomplete listings", strconv.Itoa(s.Malformed)},
			{"Unavailable months", strconv.Itoa(s.UnreachableMonths)},
		},
	})
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Requests", "Count"},
		Rows: [][]string{
			{"Pages fetched", strconv.Itoa(report.Crawl.PagesFetched)},
			{"Pages failed", strconv.Itoa(report.Crawl.PagesFailed)},
			{"Images checked", strconv.Itoa(report.Crawl.ImagesChecked)},
		},
	})
	md.PlainText("")

	switch {
	case s.UnreachableMonths > 0 || s.Malformed > 0:
		md.Warningf("%d month page(s) unavailable and %d listing(s) incomplete.", s.UnreachableMonths, s.Malformed)
	case s.Passed < s.Listings:
		md.Note(strconv.Itoa(s.Listings-s.Passed) + " listing(s) failed at least one check.")
	default:
		md.Tip("Every listing passed all checks.")
	}
	md.PlainText("")
}

// writeMonths writes one section per month.
func (w *MarkdownWriter) writeMonths(md *markdown.Markdown, report *model.RunReport) {
	for _, m := range report.Months {
		md.H2(m.Label + " - " + strconv.Itoa(m.ListingCount) + " Items")
		md.PlainText("")

		if m.Failed() {
			md.Cautionf("Page unavailable: %v", m.FetchErr)
			md.PlainText("")
			continue
		}

		if m.ListingCount == 0 {
			md.PlainText("No listings.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, 0, len(m.Listings))
		for _, l := range m.Listings {
			if l.Malformed() {
				rows = append(rows, []string{l.Listing.Brand, l.Listing.Name, "-", "-", "-", l.Err.Error()})
				continue
			}
			rows = append(rows, []string{
				l.Listing.Brand,
				l.Listing.Name,
				yesNo(l.Result.DescriptionPresent),
				yesNo(l.Result.ImageReachable),
				yesNo(l.Result.PricePresent),
				"-",
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Brand", "Name", "Blurb", "Image", "Price", "Problem"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeSignup writes the reminder signup section.
func (w *MarkdownWriter) writeSignup(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Email Reminder")
	md.PlainText("")

	s := report.Signup
	switch {
	case s == nil:
		md.PlainText("Not checked.")
	case !s.Responded():
		md.Cautionf("No response from `%s`: %v", s.Endpoint, s.Err)
	case s.Success:
		md.Tip("The Email Reminder was successful. StatusCode: " + strconv.Itoa(s.StatusCode) + " (" + s.StatusText + ")")
	default:
		md.Warningf("The Email Reminder was unsuccessful. StatusCode: %d (%s)", s.StatusCode, s.StatusText)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [shoecheck](https://github.com/nao1215/shoecheck)*")
}
