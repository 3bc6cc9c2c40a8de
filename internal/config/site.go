package config

import "fmt"

// Selectors describe the layout of the shoe store pages as CSS selectors.
// Defaults match the live shoe store; a config file may override any of them.
type Selectors struct {
	// Navigation selects the month anchors on the site root.
	Navigation string `yaml:"navigation,omitempty"`

	// Listing selects one node per shoe on a month page.
	Listing string `yaml:"listing,omitempty"`

	// Title selects the month heading on a month page.
	Title string `yaml:"title,omitempty"`

	// Brand, Name, Description, Image and Price are evaluated inside a
	// listing node. Image must select the <img> element; its src is used.
	Brand       string `yaml:"brand,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Image       string `yaml:"image,omitempty"`
	Price       string `yaml:"price,omitempty"`
}

// DefaultSelectors returns the selectors for the shoe store page layout.
// Class matches use attribute equality to mirror the exact class checks the
// site was written against.
func DefaultSelectors() Selectors {
	return Selectors{
		Navigation:  "div#header_nav li a",
		Listing:     "div[class='shoe_result']",
		Title:       "div[class='title'] h2",
		Brand:       "td[class='shoe_result_value shoe_brand'] a",
		Name:        "td[class='shoe_result_value shoe_name']",
		Description: "td[class='shoe_result_value shoe_description']",
		Image:       "td[class='shoe_image'] img",
		Price:       "td[class='shoe_result_value shoe_price']",
	}
}

// Merge returns s with every non-empty field of override applied.
func (s Selectors) Merge(override Selectors) Selectors {
	result := s
	if override.Navigation != "" {
		result.Navigation = override.Navigation
	}
	if override.Listing != "" {
		result.Listing = override.Listing
	}
	if override.Title != "" {
		result.Title = override.Title
	}
	if override.Brand != "" {
		result.Brand = override.Brand
	}
	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Description != "" {
		result.Description = override.Description
	}
	if override.Image != "" {
		result.Image = override.Image
	}
	if override.Price != "" {
		result.Price = override.Price
	}
	return result
}

// Named returns the selectors keyed by field name, in a stable order.
func (s Selectors) Named() []NamedSelector {
	return []NamedSelector{
		{"navigation", s.Navigation},
		{"listing", s.Listing},
		{"title", s.Title},
		{"brand", s.Brand},
		{"name", s.Name},
		{"description", s.Description},
		{"image", s.Image},
		{"price", s.Price},
	}
}

// NamedSelector is a selector together with the field it configures.
type NamedSelector struct {
	Field    string
	Selector string
}

// Validate checks that no selector is empty.
// Syntax is checked later, when the crawler compiles them.
func (s Selectors) Validate() error {
	for _, ns := range s.Named() {
		if ns.Selector == "" {
			return fmt.Errorf("%w: %s", ErrEmptySelector, ns.Field)
		}
	}
	return nil
}
