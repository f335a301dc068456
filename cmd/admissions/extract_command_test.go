package main

import (
	"path/filepath"
	"testing"

	"admissions/internal/bundle"
	"admissions/internal/evidence"
	"admissions/internal/testsupport"
)

const snapshotHTML = `<html><body>
<div id="continut_standard">
  <ul>
    <li>Calculatoare (în limba engleză) <a href="/docs/cifra-2026.pdf">Cifra de școlarizare 2026</a></li>
    <li>Automatică și Informatică Aplicată</li>
  </ul>
  <a href="/admitere/master">Admitere master</a>
</div>
</body></html>`

func TestExtractWritesBundle(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "licenta.html")
	testsupport.WriteFile(t, snapshot, snapshotHTML)
	target := filepath.Join(dir, "ace.yaml")

	out, stderr, err := runCLI(t, []string{
		"extract", "--url", "https://ace.ucv.ro/licenta", "--faculty", "ace", "--out", target, snapshot,
	}, "")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	requireContains(t, out, "Wrote 2 candidates and 1 documents")
	requireContains(t, stderr, "Sub-page: https://ace.ucv.ro/admitere/master")

	b, err := bundle.Load(target)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	if b.Institution != "ucv" || len(b.Candidates) != 2 || len(b.Documents) != 1 {
		t.Fatalf("unexpected bundle %+v", b)
	}
	first := b.Candidates[0]
	if first.Kind != evidence.KindHTMLListItem || first.Faculty != "ace" || first.Level != evidence.LevelBachelor {
		t.Fatalf("unexpected first candidate %+v", first)
	}
	if first.PDFLink == nil || *first.PDFLink != "https://ace.ucv.ro/docs/cifra-2026.pdf" {
		t.Fatalf("expected nearby pdf link, got %v", first.PDFLink)
	}
}

func TestExtractToStdout(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "licenta.html")
	testsupport.WriteFile(t, snapshot, snapshotHTML)

	out, _, err := runCLI(t, []string{
		"extract", "--url", "https://ace.ucv.ro/licenta", "--faculty", "ace", "--out", "-", snapshot,
	}, "")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	requireContains(t, out, "institution: ucv")
	requireContains(t, out, "kind: html-list-item")
}

func TestExtractRequiresURL(t *testing.T) {
	if _, _, err := runCLI(t, []string{"extract", "missing.html"}, ""); err == nil {
		t.Fatal("expected error without --url")
	}
}
