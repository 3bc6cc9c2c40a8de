package model

// MonthLink is one month entry of the site's header navigation.
type MonthLink struct {
	// Label is the cleaned anchor text (e.g. "January").
	Label string

	// Href is the anchor's href attribute as written in the document.
	// It is appended to the base URL verbatim.
	Href string
}

// ShoeListing holds the text extracted from one shoe result node.
// Any field may be empty; an empty field is an outcome to report, not an error.
type ShoeListing struct {
	Brand       string
	Name        string
	Description string
	ImageURL    string
	Price       string
}

// ValidationResult is the outcome of checking one ShoeListing.
type ValidationResult struct {
	// DescriptionPresent is true when the description has visible text.
	DescriptionPresent bool

	// ImageReachable is true when the image URL answered an existence probe.
	ImageReachable bool

	// PricePresent is true when the price has visible text.
	PricePresent bool
}

// Passed reports whether every check succeeded.
func (r ValidationResult) Passed() bool {
	return r.DescriptionPresent && r.ImageReachable && r.PricePresent
}

// ListingReport pairs an extracted listing with its validation result.
type ListingReport struct {
	// Listing is the extracted data. For a malformed listing it holds
	// whatever fields could be extracted before the failure.
	Listing ShoeListing

	// Result is the validation outcome. It is the zero value when Err is set.
	Result ValidationResult

	// Err is set when the listing node lacks one of its required
	// sub-elements. Such a listing is still counted but not validated.
	Err error
}

// Malformed reports whether the listing could not be extracted.
func (l ListingReport) Malformed() bool {
	return l.Err != nil
}
