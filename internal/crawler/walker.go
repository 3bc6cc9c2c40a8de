package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/shoecheck/internal/fetch"
	"github.com/nao1215/shoecheck/internal/model"
	"github.com/nao1215/shoecheck/internal/validate"
)

// PageFetcher retrieves a page body. *fetch.Client satisfies it.
type PageFetcher interface {
	Get(ctx context.Context, pageURL string) (*fetch.Response, error)
}

// ImageChecker reports whether an image URL is reachable.
// Implementations never fail: any problem is a negative answer.
type ImageChecker interface {
	Exists(ctx context.Context, imageURL string) bool
}

// Walker crawls the month pages linked from the site root.
type Walker struct {
	// baseURL is the site root without a trailing slash.
	// Month hrefs are appended to it verbatim.
	baseURL string

	// fetcher retrieves the root and month pages.
	fetcher PageFetcher

	// images probes listing images.
	images ImageChecker

	// parser holds the compiled selectors.
	parser *Parser

	// logger receives progress output.
	logger *slog.Logger

	// stats counts the requests of the current walk.
	stats model.CrawlStats
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithWalkerLogger sets the logger used for progress output.
func WithWalkerLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker creates a Walker for the site at baseURL.
func NewWalker(baseURL string, fetcher PageFetcher, images ImageChecker, parser *Parser, opts ...WalkerOption) *Walker {
	w := &Walker{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		images:  images,
		parser:  parser,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// MonthLinks fetches the site root and returns its navigation links.
// A root without navigation yields an empty slice and no error.
func (w *Walker) MonthLinks(ctx context.Context) ([]model.MonthLink, error) {
	doc, err := w.fetchDocument(ctx, w.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load site root: %w", err)
	}
	return doc.MonthLinks(), nil
}

// Walk checks every month linked from the site root, in navigation order.
// Only a root failure or cancellation is returned as an error; month
// failures are recorded in the returned reports. On cancellation the months
// finished so far are returned with the error. Stats restart at zero.
func (w *Walker) Walk(ctx context.Context) ([]*model.MonthReport, error) {
	w.stats = model.CrawlStats{}

	links, err := w.MonthLinks(ctx)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("found month links", "count", len(links))

	months := make([]*model.MonthReport, 0, len(links))
	for _, link := range links {
		select {
		case <-ctx.Done():
			return months, ctx.Err()
		default:
		}

		months = append(months, w.WalkMonth(ctx, link))
	}

	return months, nil
}

// WalkMonth fetches one month page and checks each of its listings.
// It never fails: a fetch failure is recorded in MonthReport.FetchErr.
func (w *Walker) WalkMonth(ctx context.Context, link model.MonthLink) *model.MonthReport {
	monthURL := w.baseURL + link.Href
	report := model.NewMonthReport(link.Label, monthURL)

	doc, err := w.fetchDocument(ctx, monthURL)
	if err != nil {
		w.logger.Warn("failed to load month page", "month", link.Label, "url", monthURL, "error", err)
		report.FetchErr = err
		return report
	}

	if title, ok := doc.MonthTitle(); ok {
		report.Label = title
	}

	for _, node := range doc.Listings() {
		report.AddListing(w.checkListing(ctx, node))
	}

	w.logger.Debug("checked month", "month", report.Label, "listings", report.ListingCount)

	return report
}

// Stats returns the request counters of the last walk.
func (w *Walker) Stats() model.CrawlStats {
	return w.stats
}

// checkListing extracts and validates one listing node.
// Malformed listings are reported without checking their image.
func (w *Walker) checkListing(ctx context.Context, node *goquery.Selection) model.ListingReport {
	listing, err := w.parser.ExtractListing(node)
	if err != nil {
		w.logger.Warn("skipping malformed listing", "brand", listing.Brand, "name", listing.Name, "error", err)
		return model.ListingReport{Listing: listing, Err: err}
	}

	w.stats.ImagesChecked++
	reachable := w.images.Exists(ctx, listing.ImageURL)

	return model.ListingReport{
		Listing: listing,
		Result:  validate.Listing(listing, reachable),
	}
}

// fetchDocument retrieves and parses a page. Non-2xx answers are
// reported as *StatusError.
func (w *Walker) fetchDocument(ctx context.Context, pageURL string) (*Document, error) {
	resp, err := w.fetcher.Get(ctx, pageURL)
	if err != nil {
		w.stats.PagesFailed++
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		w.stats.PagesFailed++
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode, StatusText: resp.StatusText}
	}

	w.stats.PagesFetched++
	return w.parser.Parse(resp.Body)
}
