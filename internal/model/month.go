package model

// MonthReport collects the listings found on one month page.
type MonthReport struct {
	// Label is the month title shown on the page, or the navigation label
	// when the page has no title.
	Label string

	// URL is the month page URL that was fetched.
	URL string

	// ListingCount is the number of shoe result nodes on the page.
	// It does not depend on how many listings pass validation.
	ListingCount int

	// Listings holds one entry per shoe result node, in document order.
	Listings []ListingReport

	// FetchErr is set when the page could not be retrieved at all.
	// A month with FetchErr set always has ListingCount == 0.
	FetchErr error
}

// NewMonthReport creates an empty MonthReport for the given link.
func NewMonthReport(label, url string) *MonthReport {
	return &MonthReport{
		Label:    label,
		URL:      url,
		Listings: make([]ListingReport, 0),
	}
}

// AddListing appends a listing and keeps ListingCount in step.
func (m *MonthReport) AddListing(l ListingReport) {
	m.Listings = append(m.Listings, l)
	m.ListingCount = len(m.Listings)
}

// Results returns the validation results in document order.
func (m *MonthReport) Results() []ValidationResult {
	results := make([]ValidationResult, len(m.Listings))
	for i, l := range m.Listings {
		results[i] = l.Result
	}
	return results
}

// Failed reports whether the month page could not be fetched.
func (m *MonthReport) Failed() bool {
	return m.FetchErr != nil
}

// PassedCount returns the number of listings whose checks all succeeded.
func (m *MonthReport) PassedCount() int {
	n := 0
	for _, l := range m.Listings {
		if !l.Malformed() && l.Result.Passed() {
			n++
		}
	}
	return n
}

// MalformedCount returns the number of listings that could not be extracted.
func (m *MonthReport) MalformedCount() int {
	n := 0
	for _, l := range m.Listings {
		if l.Malformed() {
			n++
		}
	}
	return n
}
