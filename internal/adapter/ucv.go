package adapter

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"admissions/internal/evidence"
	"admissions/internal/textnorm"
)

// ucvContainers are tried in order; the first match scopes extraction.
var ucvContainers = []string{
	"div#continut_standard",
	"div#main_content",
	"article",
	".entry-content",
	".post-content",
	".page-content",
	"main",
}

// ucvSubPageWords mark same-site links worth visiting from a faculty page.
var ucvSubPageWords = []string{"admitere", "licenta", "master", "doctorat", "locuri"}

var statsHint = regexp.MustCompile(`(?i)\d+\s*loc`)

type ucv struct{}

func newUCV() Adapter { return ucv{} }

func (ucv) Info() Info {
	return Info{Slug: "ucv", Name: "Universitatea din Craiova"}
}

func (ucv) container(p *Page) *goquery.Selection {
	for _, sel := range ucvContainers {
		if found := p.doc.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return p.doc.Selection
}

// ExtractCandidates emits one candidate per list item, one per paragraph that
// carries seat statistics, and one per data row of a seat table. Domain
// headings ("Domeniul ...") only scope the items that follow and are not
// emitted.
func (u ucv) ExtractCandidates(p *Page) []evidence.RawCandidate {
	root := u.container(p)
	level := levelFromURL(p.URL)
	var out []evidence.RawCandidate
	add := func(kind evidence.SourceKind, text string, link *goquery.Selection) {
		c := evidence.RawCandidate{
			Kind:      kind,
			Text:      text,
			SourceURL: p.URL,
			Position:  len(out),
			Faculty:   p.Faculty,
			Level:     level,
		}
		if link != nil && link.Length() > 0 {
			href, _ := link.Attr("href")
			if abs := p.Resolve(href); abs != "" {
				c.PDFLink = evidence.Str(abs)
				c.AnchorText = evidence.Str(nodeText(link))
			}
		}
		out = append(out, c)
	}

	root.Find("li").Each(func(_ int, li *goquery.Selection) {
		if li.Find("li").Length() > 0 {
			return
		}
		text := nodeText(li)
		if text == "" || strings.HasPrefix(textnorm.Fold(text), "domeniul") {
			return
		}
		add(evidence.KindHTMLListItem, text, pdfAnchor(li))
	})

	root.Find("p").Each(func(_ int, para *goquery.Selection) {
		text := nodeText(para)
		if statsHint.MatchString(text) {
			add(evidence.KindHTMLTextBlock, text, pdfAnchor(para))
		}
	})

	root.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}
		budgetCol, feeCol := tableColumns(rows.First())
		rows.Slice(1, rows.Length()).Each(func(_ int, tr *goquery.Selection) {
			if text := tableRowText(tr, budgetCol, feeCol); text != "" {
				add(evidence.KindHTMLTextBlock, text, pdfAnchor(tr))
			}
		})
	})
	return out
}

func pdfAnchor(sel *goquery.Selection) *goquery.Selection {
	return sel.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		return isPDF(href)
	}).First()
}

// tableColumns finds the budget and fee columns from a header row, falling
// back to the common "name | budget | ... | fee" layout.
func tableColumns(header *goquery.Selection) (int, int) {
	budget, fee := -1, -1
	header.Find("td, th").Each(func(i int, cell *goquery.Selection) {
		text := textnorm.Fold(nodeText(cell))
		switch {
		case budget < 0 && strings.Contains(text, "buget"):
			budget = i
		case fee < 0 && strings.Contains(text, "tax"):
			fee = i
		}
	})
	if budget < 0 {
		budget = 1
	}
	if fee < 0 {
		fee = 3
	}
	return budget, fee
}

// tableRowText renders a seat-table row in the inline phrasing the validator
// understands: "<name>: <B> locuri la buget, <F> locuri cu taxă".
func tableRowText(tr *goquery.Selection, budgetCol, feeCol int) string {
	cells := tr.Find("td")
	if cells.Length() < 2 {
		return ""
	}
	name := nodeText(cells.Eq(0))
	if name == "" || strings.HasPrefix(textnorm.Fold(name), "domeniul") {
		return ""
	}
	parts := []string{name}
	if n := cellNumber(cells, budgetCol); n != "" {
		parts = append(parts, n+" locuri la buget")
	}
	if n := cellNumber(cells, feeCol); n != "" {
		parts = append(parts, n+" locuri cu taxă")
	}
	if len(parts) == 1 {
		return name
	}
	return parts[0] + ": " + strings.Join(parts[1:], ", ")
}

func cellNumber(cells *goquery.Selection, col int) string {
	if col >= cells.Length() {
		return ""
	}
	text := strings.Trim(nodeText(cells.Eq(col)), "* ")
	for _, r := range text {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return text
}

// EnumerateSubPages returns same-site admission pages linked from p, in
// document order without duplicates.
func (u ucv) EnumerateSubPages(p *Page) []string {
	seen := map[string]bool{p.URL: true}
	var out []string
	u.container(p).Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if isPDF(href) {
			return
		}
		abs := p.Resolve(href)
		if abs == "" || !sameHost(abs, p.URL) {
			return
		}
		if i := strings.IndexByte(abs, '#'); i >= 0 {
			abs = abs[:i]
		}
		if seen[abs] {
			return
		}
		folded := textnorm.Fold(abs + " " + nodeText(a))
		for _, word := range ucvSubPageWords {
			if strings.Contains(folded, word) {
				seen[abs] = true
				out = append(out, abs)
				return
			}
		}
	})
	return out
}

// ExtractPDFLinks returns every PDF linked from the page with its anchor
// text, in document order without duplicates.
func (u ucv) ExtractPDFLinks(p *Page) []Link {
	level := levelFromURL(p.URL)
	seen := map[string]bool{}
	var out []Link
	u.container(p).Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !isPDF(href) {
			return
		}
		abs := p.Resolve(href)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		out = append(out, Link{
			URL:       abs,
			Text:      nodeText(a),
			SourceURL: p.URL,
			Faculty:   p.Faculty,
			Level:     level,
		})
	})
	return out
}
