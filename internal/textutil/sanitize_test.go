package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"UCV", "ucv"},
		{"ubb-cluj", "ubb-cluj"},
		{"ace_2026", "ace-2026"},
		{"Univ. București", "univ-bucuresti"},
		{"Facultatea de Științe", "facultatea-de-stiinte"},
		{"  ", "unknown"},
		{"***", "unknown"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.input); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
