package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"admissions/internal/config"
	"admissions/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "error"
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	testsupport.WriteFile(t, path, string(data))
}

const sampleBundle = `institution: ucv
candidates:
  - kind: html-list-item
    text: "Calculatoare (în limba engleză)"
    source_url: https://ace.ucv.ro/licenta
    position: 0
    faculty: ace
    level: Licență
  - kind: html-text-block
    text: "Ghid de înscriere"
    source_url: https://ace.ucv.ro/licenta
    position: 1
    faculty: ace
    level: Licență
  - kind: pdf-row
    text: "Calc. Eng. 30 buget 5 taxă"
    source_url: https://ace.ucv.ro/docs/cifra-2026.pdf
    position: 2
    faculty: ace
    level: bachelor
    anchor_text: "Cifra de școlarizare 2026"
documents:
  - url: https://ace.ucv.ro/docs/metodologie.pdf
    text: Metodologie admitere
    source_url: https://ace.ucv.ro/licenta
    faculty: ace
    level: bachelor
`

func writeBundle(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "bundle.yaml")
	testsupport.WriteFile(t, path, content)
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
