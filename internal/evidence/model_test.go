package evidence

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"Licenta", LevelBachelor},
		{"Licență", LevelBachelor},
		{"bachelor", LevelBachelor},
		{"Master", LevelMaster},
		{"masterat", LevelMaster},
		{"Doctorat", LevelPhD},
		{"PhD", LevelPhD},
		{"", LevelUnknown},
		{"postuniversitar", LevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Fatalf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEntityCloneDoesNotAlias(t *testing.T) {
	orig := Entity{
		Budget:     Int(30),
		RawText:    Str(""),
		SourceURLs: []string{"https://a.example/x"},
	}
	clone := orig.Clone()
	*clone.Budget = 99
	clone.SourceURLs[0] = "changed"
	*clone.RawText = "changed"

	if *orig.Budget != 30 {
		t.Fatalf("budget aliased: %d", *orig.Budget)
	}
	if orig.SourceURLs[0] != "https://a.example/x" {
		t.Fatalf("urls aliased: %v", orig.SourceURLs)
	}
	if *orig.RawText != "" {
		t.Fatalf("raw text aliased: %q", *orig.RawText)
	}
}

func TestCloneKeepsNullDistinctFromEmpty(t *testing.T) {
	clone := Entity{}.Clone()
	if clone.RawText != nil || clone.Budget != nil || clone.Fee != nil {
		t.Fatal("expected nil fields to stay nil")
	}
	empty := Entity{RawText: Str("")}.Clone()
	if empty.RawText == nil {
		t.Fatal("expected empty string to stay present")
	}
}

func TestDocumentURL(t *testing.T) {
	row := PDFCandidate{RawCandidate: RawCandidate{Kind: KindPDFRow, SourceURL: "https://a.example/cifra.pdf"}}
	if got := row.DocumentURL(); got != "https://a.example/cifra.pdf" {
		t.Fatalf("row DocumentURL = %q", got)
	}
	stub := PDFCandidate{RawCandidate: RawCandidate{
		Kind:      KindHTMLListItem,
		SourceURL: "https://a.example/licenta",
		PDFLink:   Str("https://a.example/locuri.pdf"),
	}}
	if got := stub.DocumentURL(); got != "https://a.example/locuri.pdf" {
		t.Fatalf("stub DocumentURL = %q", got)
	}
}

func TestClassOf(t *testing.T) {
	if ClassOf(ReasonNoise) != ClassSemanticNoise {
		t.Fatal("noise should map to SEMANTIC_NOISE")
	}
	if ClassOf(ReasonMissingField) != ClassStructuralInvalid {
		t.Fatal("missing field should map to STRUCTURAL_INVALID")
	}
	if ClassOf("other") != "" {
		t.Fatal("unknown reason should map to empty class")
	}
}
