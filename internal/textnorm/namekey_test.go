package textnorm

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  NameKey
	}{
		{"Calculatoare (în limba engleză)", NameKey{Key: "calculatoare", Language: "en"}},
		{"Calc. Eng.", NameKey{Key: "calculatoare", Language: "en"}},
		{"Informatică", NameKey{Key: "informatica"}},
		{"Informatica - în limba engleză", NameKey{Key: "informatica", Language: "en"}},
		{"Informatica engleza", NameKey{Key: "informatica", Language: "en"}},
		{"Informatică [franceză]", NameKey{Key: "informatica", Language: "fr"}},
		{"Limba și literatura engleză", NameKey{Key: "limba si literatura engleza"}},
		{"Limba engleză", NameKey{Key: "limba engleza"}},
		{"Automatică și Informatică Aplicată 2025-2026", NameKey{Key: "automatica si informatica aplicata"}},
		{"Ing. Mecanică, anul II", NameKey{Key: "inginerie mecanica"}},
		{"(Calculatoare)", NameKey{Key: "calculatoare"}},
		{"Ştiinţa mediului", NameKey{Key: "stiinta mediului"}},
		{"2025", NameKey{}},
		{"", NameKey{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Fatalf("NormalizeName(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameIsIdempotent(t *testing.T) {
	corpus := []string{
		"Calculatoare (în limba engleză)",
		"Calc. Eng.",
		"Inf. Aplicată - Editia 3",
		"Ing. Auto 2024/2025",
		"Limba și literatura română - Limba și literatura engleză",
		"MecatronicÄƒ È™i RoboticÄƒ",
		"Anul I Informatica in limba germana",
	}
	for _, input := range corpus {
		first := NormalizeName(input)
		second := NormalizeName(first.Key)
		if second.Key != first.Key {
			t.Errorf("key not stable for %q: %q then %q", input, first.Key, second.Key)
		}
	}
}

func TestNameKeyValid(t *testing.T) {
	if (NameKey{}).Valid() {
		t.Fatal("empty key should be invalid")
	}
	if !NormalizeName("Informatică").Valid() {
		t.Fatal("expected valid key")
	}
}
