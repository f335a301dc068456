package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"admissions/internal/evidence"
)

func TestResolveIsDeterministic(t *testing.T) {
	r := NewResolver(nil)
	a := r.Resolve("https://ucv.ro/licenta", "Calculatoare (în limba engleză)")
	b := r.Resolve("https://ucv.ro/licenta", "Calculatoare (în limba engleză)")
	if a != b {
		t.Fatalf("ids differ: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestResolveCanonicalizesInputs(t *testing.T) {
	r := NewResolver(nil)
	base := r.Resolve("https://www.ucv.ro/licenta", "Informatică")
	tests := []struct {
		name string
		url  string
		prog string
	}{
		{"tracking params", "https://www.ucv.ro/licenta/?utm_source=fb&fbclid=1", "Informatică"},
		{"case and port", "HTTPS://WWW.UCV.RO:443/licenta", "Informatică"},
		{"fragment", "https://www.ucv.ro/licenta#programe", "Informatică"},
		{"diacritics and spacing", "https://www.ucv.ro/licenta", "  INFORMATICA "},
		{"cedilla", "https://www.ucv.ro/licenta", "Informatică 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.url, tt.prog); got != base {
				t.Fatalf("Resolve(%q, %q) = %s, want %s", tt.url, tt.prog, got, base)
			}
		})
	}
}

func TestResolveKeepsLoadBearingParams(t *testing.T) {
	r := NewResolver(nil)
	p1 := r.Resolve("https://ucv.ro/programe?page=1", "Informatică")
	p2 := r.Resolve("https://ucv.ro/programe?page=2", "Informatică")
	if p1 == p2 {
		t.Fatal("page parameter should distinguish ids")
	}

	bare := NewResolver([]string{})
	if bare.Resolve("https://ucv.ro/programe?page=1", "x") != bare.Resolve("https://ucv.ro/programe?page=2", "x") {
		t.Fatal("empty allowlist should drop every parameter")
	}
}

func TestResolveDigestFormat(t *testing.T) {
	r := NewResolver(nil)
	sum := sha256.Sum256([]byte("https://ucv.ro/licenta|calculatoare"))
	want := evidence.ID(hex.EncodeToString(sum[:]))
	if got := r.Resolve("https://ucv.ro/licenta/", "Calculatoare"); got != want {
		t.Fatalf("Resolve = %s, want %s", got, want)
	}
}

func TestFaculty(t *testing.T) {
	if Faculty("ACE") != Faculty(" ace ") {
		t.Fatal("faculty ids should ignore case and spacing")
	}
	if Faculty("ace") == Faculty("litere") {
		t.Fatal("distinct slugs should differ")
	}
}
