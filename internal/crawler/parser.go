package crawler

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/nao1215/shoecheck/internal/config"
	"github.com/nao1215/shoecheck/internal/model"
	"github.com/nao1215/shoecheck/internal/validate"
)

// Listing field names, used in MissingNodeError and logs.
const (
	fieldBrand       = "brand"
	fieldName        = "name"
	fieldDescription = "description"
	fieldImage       = "image"
	fieldPrice       = "price"
)

// Parser turns page bodies into Documents and extracts listings.
// All selectors are compiled once, so a typo in a configured selector is
// reported before any request is sent.
type Parser struct {
	navigation  cascadia.Selector
	listing     cascadia.Selector
	title       cascadia.Selector
	brand       cascadia.Selector
	name        cascadia.Selector
	description cascadia.Selector
	image       cascadia.Selector
	price       cascadia.Selector
}

// NewParser compiles the given selectors.
func NewParser(sel config.Selectors) (*Parser, error) {
	compiled := make(map[string]cascadia.Selector, 8)
	for _, ns := range sel.Named() {
		s, err := cascadia.Compile(ns.Selector)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %v", ErrInvalidSelector, ns.Field, ns.Selector, err)
		}
		compiled[ns.Field] = s
	}

	return &Parser{
		navigation:  compiled["navigation"],
		listing:     compiled["listing"],
		title:       compiled["title"],
		brand:       compiled[fieldBrand],
		name:        compiled[fieldName],
		description: compiled[fieldDescription],
		image:       compiled[fieldImage],
		price:       compiled[fieldPrice],
	}, nil
}

// Parse parses an HTML body. An empty body yields an empty document,
// on which every query returns nothing.
func (p *Parser) Parse(body []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{doc: goquery.NewDocumentFromNode(root), parser: p}, nil
}

// Document is one parsed page.
type Document struct {
	doc    *goquery.Document
	parser *Parser
}

// MonthLinks returns the navigation anchors in document order.
func (d *Document) MonthLinks() []model.MonthLink {
	anchors := d.doc.FindMatcher(d.parser.navigation)
	links := make([]model.MonthLink, 0, anchors.Length())
	anchors.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		links = append(links, model.MonthLink{
			Label: validate.Clean(a.Text()),
			Href:  href,
		})
	})
	return links
}

// Listings returns the shoe result nodes in document order.
func (d *Document) Listings() []*goquery.Selection {
	nodes := d.doc.FindMatcher(d.parser.listing)
	listings := make([]*goquery.Selection, 0, nodes.Length())
	nodes.Each(func(_ int, s *goquery.Selection) {
		listings = append(listings, s)
	})
	return listings
}

// MonthTitle returns the cleaned month heading, and false when the page has none.
func (d *Document) MonthTitle() (string, bool) {
	title := d.doc.FindMatcher(d.parser.title).First()
	if title.Length() == 0 {
		return "", false
	}
	return validate.Clean(title.Text()), true
}

// ExtractListing reads the five listing fields from a shoe result node.
// Fields whose element is absent are left empty and named in the returned
// *MissingNodeError; the fields that were found are still returned.
// An <img> without src is not an error: the image URL is simply empty.
func (p *Parser) ExtractListing(node *goquery.Selection) (model.ShoeListing, error) {
	var (
		listing model.ShoeListing
		missing []string
	)

	text := func(field string, sel cascadia.Selector, dst *string) {
		match := node.FindMatcher(sel).First()
		if match.Length() == 0 {
			missing = append(missing, field)
			return
		}
		*dst = validate.Clean(match.Text())
	}

	text(fieldBrand, p.brand, &listing.Brand)
	text(fieldName, p.name, &listing.Name)
	text(fieldDescription, p.description, &listing.Description)

	if img := node.FindMatcher(p.image).First(); img.Length() == 0 {
		missing = append(missing, fieldImage)
	} else {
		src, _ := img.Attr("src")
		listing.ImageURL = validate.Clean(src)
	}

	text(fieldPrice, p.price, &listing.Price)

	if len(missing) > 0 {
		return listing, &MissingNodeError{Fields: missing}
	}
	return listing, nil
}
