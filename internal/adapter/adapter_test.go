package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"admissions/internal/evidence"
)

const pageURL = "https://ace.ucv.ro/admitere/licenta"

func loadPage(t *testing.T) *Page {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "ace_licenta.html"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()
	page, err := ParsePage(pageURL, "ace", f)
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	return page
}

func TestLookup(t *testing.T) {
	a, err := Lookup(" UCV ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if a.Info().Slug != "ucv" {
		t.Fatalf("unexpected adapter %+v", a.Info())
	}
	if _, err := Lookup("upb"); !errors.Is(err, ErrUnknownInstitution) {
		t.Fatalf("expected ErrUnknownInstitution, got %v", err)
	}
	if diff := cmp.Diff([]string{"ucv"}, Institutions()); diff != "" {
		t.Fatalf("institutions mismatch (-want +got):\n%s", diff)
	}
}

func TestUCVExtractCandidates(t *testing.T) {
	a, _ := Lookup("ucv")
	got := a.ExtractCandidates(loadPage(t))

	type row struct {
		Kind evidence.SourceKind
		Text string
		PDF  string
	}
	var rows []row
	for _, c := range got {
		r := row{Kind: c.Kind, Text: c.Text}
		if c.PDFLink != nil {
			r.PDF = *c.PDFLink
		}
		rows = append(rows, r)
		if c.SourceURL != pageURL || c.Faculty != "ace" || c.Level != evidence.LevelBachelor {
			t.Fatalf("unexpected provenance %+v", c)
		}
	}
	want := []row{
		{evidence.KindHTMLListItem, "Calculatoare (în limba engleză) – 30 locuri la buget", ""},
		{evidence.KindHTMLListItem, "Automatică și Informatică Aplicată Plan de învățământ", "https://ace.ucv.ro/docs/aia-plan.pdf"},
		{evidence.KindHTMLListItem, "Ghid de înscriere", ""},
		{evidence.KindHTMLListItem, "Mecatronică și Robotică", ""},
		{evidence.KindHTMLTextBlock, "Pentru Electronică aplicată sunt disponibile 40 locuri la buget și 10 locuri cu taxă.", ""},
		{evidence.KindHTMLTextBlock, "Ingineria sistemelor: 25 locuri la buget, 5 locuri cu taxă", ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	for i, c := range got {
		if c.Position != i {
			t.Fatalf("candidate %d has position %d", i, c.Position)
		}
	}
	if got[1].AnchorText == nil || *got[1].AnchorText != "Plan de învățământ" {
		t.Fatalf("anchor text = %v", got[1].AnchorText)
	}
}

func TestUCVEnumerateSubPages(t *testing.T) {
	a, _ := Lookup("ucv")
	want := []string{"https://ace.ucv.ro/admitere/master"}
	if diff := cmp.Diff(want, a.EnumerateSubPages(loadPage(t))); diff != "" {
		t.Fatalf("sub-pages mismatch (-want +got):\n%s", diff)
	}
}

func TestUCVExtractPDFLinks(t *testing.T) {
	a, _ := Lookup("ucv")
	links := a.ExtractPDFLinks(loadPage(t))
	var urls []string
	for _, l := range links {
		urls = append(urls, l.URL)
	}
	want := []string{
		"https://ace.ucv.ro/docs/aia-plan.pdf",
		"https://ace.ucv.ro/docs/Cifra-Scolarizare-2026.PDF?v=2",
		"https://ace.ucv.ro/docs/metodologie.pdf",
	}
	if diff := cmp.Diff(want, urls); diff != "" {
		t.Fatalf("pdf links mismatch (-want +got):\n%s", diff)
	}
	if links[1].Text != "Cifra de școlarizare 2026" || links[1].Level != evidence.LevelBachelor {
		t.Fatalf("unexpected link %+v", links[1])
	}
}

func TestContainerFallsBackToDocument(t *testing.T) {
	page, err := ParsePage("https://ucv.ro/master/", "drept", strings.NewReader(`<ul><li>Drept european</li></ul>`))
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	got := newUCV().ExtractCandidates(page)
	if len(got) != 1 || got[0].Text != "Drept european" || got[0].Level != evidence.LevelMaster {
		t.Fatalf("unexpected candidates %+v", got)
	}
}

func TestLevelFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want evidence.Level
	}{
		{"https://ace.ucv.ro/admitere/licenta", evidence.LevelBachelor},
		{"https://ace.ucv.ro/admitere-master/", evidence.LevelMaster},
		{"https://ucv.ro/doctorat?x=licenta", evidence.LevelPhD},
		{"https://ucv.ro/admitere", evidence.LevelUnknown},
	}
	for _, tt := range tests {
		if got := levelFromURL(tt.url); got != tt.want {
			t.Errorf("levelFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
