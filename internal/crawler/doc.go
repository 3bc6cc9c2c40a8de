// Package crawler walks the shoe store: it discovers the month pages from the
// site navigation, extracts every shoe listing from each month page and runs
// the listing checks.
//
// # Components
//
//   - Parser: compiles the configured CSS selectors (cascadia) and turns page
//     bodies into Documents (golang.org/x/net/html + goquery)
//   - Document: selection queries over one parsed page
//   - Walker: the sequential month-by-month crawl
//
// # Ordering
//
// Months are reported in navigation order and listings in document order.
// The walker is strictly sequential: one month page fetch, then one image
// probe per listing, before moving on to the next month.
//
// # Failures
//
// A month page that cannot be fetched produces a MonthReport with FetchErr
// set and no listings. A listing missing one of its sub-elements is counted
// and reported with a *MissingNodeError instead of being validated.
//
// # Usage
//
//	parser, err := crawler.NewParser(cfg.Selectors)
//	walker := crawler.NewWalker(cfg.BaseURL, client, prober, parser)
//	months, err := walker.Walk(ctx)
package crawler
