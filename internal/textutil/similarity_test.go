package textutil

import (
	"math"
	"testing"
)

func TestRatioEmpty(t *testing.T) {
	if got := Ratio("", ""); got != 0 {
		t.Fatalf("Ratio of empty strings = %v, want 0", got)
	}
	if got := Ratio("calculatoare", ""); got != 0 {
		t.Fatalf("Ratio against empty = %v, want 0", got)
	}
}

func TestRatioIdentical(t *testing.T) {
	if got := Ratio("calculatoare", "calculatoare"); got != 1 {
		t.Fatalf("Ratio identical = %v, want 1", got)
	}
}

func TestRatioCountsRunes(t *testing.T) {
	// One substitution over five runes, regardless of byte width.
	got := Ratio("știri", "stiri")
	if math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("Ratio = %v, want 0.8", got)
	}
}

func TestSimilarityReordered(t *testing.T) {
	a := "mecatronica si robotica"
	b := "robotica si mecatronica"
	if Ratio(a, b) >= 0.82 {
		t.Fatalf("plain ratio unexpectedly high: %v", Ratio(a, b))
	}
	if got := Similarity(a, b); got != 1 {
		t.Fatalf("Similarity = %v, want 1", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"calculatoare", "calculatoare si tehnologia informatiei"},
		{"informatica aplicata", "informatica"},
		{"automatica", "automatica si informatica aplicata"},
	}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Errorf("Similarity(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestSimilarityThresholdExamples(t *testing.T) {
	tests := []struct {
		a, b  string
		above bool
	}{
		{"calculatoare", "calculatoare", true},
		{"inginerie electrica", "ingineria electrica", true},
		{"calculatoare", "informatica", false},
		{"automatica", "automatica si informatica aplicata", false},
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if (got >= 0.82) != tt.above {
			t.Errorf("Similarity(%q, %q) = %.3f, above=%v", tt.a, tt.b, got, tt.above)
		}
	}
}
