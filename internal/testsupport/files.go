package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"admissions/internal/bundle"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteBundle saves b as dir/name; the extension picks the format.
func WriteBundle(t testing.TB, dir, name string, b *bundle.Bundle) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := bundle.Save(path, b); err != nil {
		t.Fatalf("save bundle %s: %v", path, err)
	}
	return path
}
