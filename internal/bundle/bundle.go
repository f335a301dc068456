// Package bundle reads and writes evidence bundles: the closed set of raw
// candidates and discovered documents handed to one fusion run.
//
// Bundles are YAML (.yaml, .yml) or JSON (.json), chosen by file extension.
// Unknown fields are rejected so a typo in a hand-edited bundle fails loudly
// instead of silently dropping evidence.
package bundle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"admissions/internal/adapter"
	"admissions/internal/evidence"
)

// ErrUnsupportedFormat is returned for file extensions other than YAML or JSON.
var ErrUnsupportedFormat = errors.New("unsupported bundle format")

// Format is a bundle encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Bundle is the input of one run.
type Bundle struct {
	Institution string                  `json:"institution" yaml:"institution"`
	Candidates  []evidence.RawCandidate `json:"candidates" yaml:"candidates"`
	Documents   []adapter.Link          `json:"documents,omitempty" yaml:"documents,omitempty"`
}

// FormatFor maps a file path to its format by extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the bundle at path.
func Load(path string) (*Bundle, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	b, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}
	return b, nil
}

// Decode parses a bundle and checks that every candidate has a known kind.
func Decode(r io.Reader, format Format) (*Bundle, error) {
	var b Bundle
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Bundle) validate() error {
	for i, c := range b.Candidates {
		switch c.Kind {
		case evidence.KindHTMLListItem, evidence.KindHTMLTextBlock, evidence.KindPDFRow:
		default:
			return fmt.Errorf("candidate %d: unknown kind %q", i, c.Kind)
		}
		if c.Level == "" {
			b.Candidates[i].Level = evidence.LevelUnknown
		}
	}
	return nil
}

// Encode writes b in format.
func Encode(w io.Writer, b *Bundle, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes b to path in the format implied by its extension.
func Save(path string, b *Bundle) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, b, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}

// DocumentCandidates turns the discovered document links into unranked PDF
// link candidates. Links without a URL are skipped.
func (b *Bundle) DocumentCandidates() []evidence.PDFCandidate {
	out := make([]evidence.PDFCandidate, 0, len(b.Documents))
	for i, link := range b.Documents {
		url := strings.TrimSpace(link.URL)
		if url == "" {
			continue
		}
		level := link.Level
		if level == "" {
			level = evidence.LevelUnknown
		}
		out = append(out, evidence.PDFCandidate{
			RawCandidate: evidence.RawCandidate{
				Kind:       evidence.KindHTMLListItem,
				Text:       link.Text,
				SourceURL:  link.SourceURL,
				Position:   i,
				PDFLink:    evidence.Str(url),
				AnchorText: evidence.Str(link.Text),
				Faculty:    link.Faculty,
				Level:      level,
			},
			LinkText: link.Text,
		})
	}
	return out
}
