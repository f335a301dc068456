package bundle

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"admissions/internal/adapter"
	"admissions/internal/evidence"
)

const sampleYAML = `
institution: ucv
candidates:
  - kind: html-list-item
    text: "Calculatoare (în limba engleză)"
    source_url: https://ace.ucv.ro/licenta
    position: 0
    faculty: ace
    level: Licență
    pdf_link: https://ace.ucv.ro/docs/cifra-2026.pdf
    anchor_text: ""
  - kind: pdf-row
    text: "Calc. Eng. 30 buget 5 taxă"
    source_url: https://ace.ucv.ro/docs/cifra-2026.pdf
    position: 3
    faculty: ace
    level: bachelor
documents:
  - url: https://ace.ucv.ro/docs/cifra-2026.pdf
    text: Cifra de școlarizare 2026
    source_url: https://ace.ucv.ro/licenta
    faculty: ace
    level: bachelor
`

func TestDecodeYAML(t *testing.T) {
	b, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Institution != "ucv" || len(b.Candidates) != 2 || len(b.Documents) != 1 {
		t.Fatalf("unexpected bundle %+v", b)
	}
	first := b.Candidates[0]
	if first.Level != evidence.LevelBachelor {
		t.Fatalf("level = %q, want bachelor", first.Level)
	}
	if first.PDFLink == nil || *first.PDFLink != "https://ace.ucv.ro/docs/cifra-2026.pdf" {
		t.Fatalf("pdf link = %v", first.PDFLink)
	}
	if first.AnchorText == nil || *first.AnchorText != "" {
		t.Fatal("explicit empty anchor text must stay present")
	}
	if b.Candidates[1].AnchorText != nil {
		t.Fatal("absent anchor text must stay nil")
	}
}

func TestRoundTripAcrossFormats(t *testing.T) {
	orig, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"bundle.json", "bundle.yml"} {
		path := filepath.Join(dir, name)
		if err := Save(path, orig); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if diff := cmp.Diff(orig, loaded); diff != "" {
			t.Fatalf("%s round trip mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"unknown field", "institution: ucv\ncandidatez: []\n", FormatYAML},
		{"unknown kind", "candidates:\n  - kind: pdf-table\n    text: x\n", FormatYAML},
		{"bad json", `{"institution": 3}`, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input), tt.format); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestEmptyDocumentDecodes(t *testing.T) {
	b, err := Decode(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(b.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(b.Candidates))
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Load("bundle.csv"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "bundle.toml"), &Bundle{Documents: []adapter.Link{}}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestMissingLevelBecomesUnknown(t *testing.T) {
	b, err := Decode(strings.NewReader(`{"candidates":[{"kind":"html-text-block","text":"x","source_url":"u","position":0,"faculty":""}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Candidates[0].Level != evidence.LevelUnknown {
		t.Fatalf("level = %q", b.Candidates[0].Level)
	}
}

func TestDocumentCandidates(t *testing.T) {
	b := &Bundle{Documents: []adapter.Link{
		{URL: "https://ace.ucv.ro/docs/cifra-2026.pdf", Text: "Cifra 2026", SourceURL: "https://ace.ucv.ro/licenta", Faculty: "ace"},
		{URL: "  ", Text: "broken"},
	}}
	got := b.DocumentCandidates()
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.DocumentURL() != "https://ace.ucv.ro/docs/cifra-2026.pdf" {
		t.Fatalf("document url = %q", c.DocumentURL())
	}
	if c.LinkText != "Cifra 2026" || c.Level != evidence.LevelUnknown || c.Row != nil || c.Ranked {
		t.Fatalf("unexpected candidate %+v", c)
	}
}
