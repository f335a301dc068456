package adapter

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"admissions/internal/evidence"
	"admissions/internal/textnorm"
)

// nodeText collects the text nodes under sel, skipping script and style, and
// joins them with single spaces so inline markup never glues two words.
func nodeText(sel *goquery.Selection) string {
	var fragments []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			fragments = append(fragments, n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return textnorm.JoinFragments(fragments)
}

// isPDF reports whether href points at a PDF document, ignoring query and
// fragment.
func isPDF(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

// levelFromURL infers the study cycle from path segments such as
// "/licenta/" or "/admitere-master".
func levelFromURL(raw string) evidence.Level {
	u, err := url.Parse(raw)
	if err != nil {
		return evidence.LevelUnknown
	}
	path := textnorm.Fold(u.Path)
	for _, tok := range strings.Fields(path) {
		if level := evidence.ParseLevel(tok); level != evidence.LevelUnknown {
			return level
		}
	}
	return evidence.LevelUnknown
}

func sameHost(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	return strings.EqualFold(ua.Hostname(), ub.Hostname())
}
