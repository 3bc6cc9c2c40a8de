// Package validate implements the presence checks applied to shoe listings.
package validate

import (
	"strings"

	"github.com/nao1215/shoecheck/internal/model"
)

// controlReplacer deletes the characters that never count as content.
var controlReplacer = strings.NewReplacer("\n", "", "\r", "", "\t", "")

// Clean trims surrounding whitespace and then deletes every newline,
// carriage return and tab, wherever it occurs.
func Clean(s string) string {
	return controlReplacer.Replace(strings.TrimSpace(s))
}

// Present reports whether s has any content left after Clean.
func Present(s string) bool {
	return Clean(s) != ""
}

// Fields checks the two validated text fields of a listing.
// Brand and name are displayed but not validated.
func Fields(l model.ShoeListing) (description, price bool) {
	return Present(l.Description), Present(l.Price)
}

// Listing builds the full result for a listing given the outcome of its
// image probe.
func Listing(l model.ShoeListing, imageReachable bool) model.ValidationResult {
	description, price := Fields(l)
	return model.ValidationResult{
		DescriptionPresent: description,
		ImageReachable:     imageReachable,
		PricePresent:       price,
	}
}
