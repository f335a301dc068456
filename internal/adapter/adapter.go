package adapter

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"admissions/internal/evidence"
)

// ErrUnknownInstitution is returned by Lookup for an unregistered slug.
var ErrUnknownInstitution = errors.New("unknown institution")

// Info describes an institution.
type Info struct {
	Slug string
	Name string
}

// Link is an admission document discovered on a page.
type Link struct {
	URL       string         `json:"url" yaml:"url"`
	Text      string         `json:"text" yaml:"text"`
	SourceURL string         `json:"source_url" yaml:"source_url"`
	Faculty   string         `json:"faculty" yaml:"faculty"`
	Level     evidence.Level `json:"level" yaml:"level"`
}

// Page is a parsed HTML snapshot of one institution page.
type Page struct {
	URL     string
	Faculty string
	base    *url.URL
	doc     *goquery.Document
}

// ParsePage parses an HTML snapshot fetched from pageURL.
func ParsePage(pageURL, faculty string, r io.Reader) (*Page, error) {
	base, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Page{URL: base.String(), Faculty: faculty, base: base, doc: doc}, nil
}

// Resolve returns href made absolute against the page URL, or "" when it
// cannot be parsed.
func (p *Page) Resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return p.base.ResolveReference(ref).String()
}

// Adapter is the capability set of one institution.
type Adapter interface {
	Info() Info
	EnumerateSubPages(p *Page) []string
	ExtractCandidates(p *Page) []evidence.RawCandidate
	ExtractPDFLinks(p *Page) []Link
}

// Factory builds an Adapter.
type Factory func() Adapter

var registry = map[string]Factory{
	"ucv": newUCV,
}

// Lookup returns the adapter registered for slug.
func Lookup(slug string) (Adapter, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownInstitution, slug, strings.Join(Institutions(), ", "))
	}
	return factory(), nil
}

// Institutions lists the registered slugs in sorted order.
func Institutions() []string {
	slugs := make([]string, 0, len(registry))
	for slug := range registry {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	return slugs
}
