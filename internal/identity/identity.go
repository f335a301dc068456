// Package identity derives deterministic entity identifiers from a source
// URL and a program name.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"admissions/internal/evidence"
	"admissions/internal/textnorm"
)

// DefaultLoadBearingParams are the query parameters that select content and
// therefore survive URL canonicalization.
var DefaultLoadBearingParams = []string{"page", "p", "pagina", "page_id", "id"}

// Resolver computes entity IDs. The zero value keeps no query parameters.
type Resolver struct {
	keep []string
}

// NewResolver returns a Resolver that preserves the given load-bearing query
// parameters. A nil slice selects DefaultLoadBearingParams.
func NewResolver(loadBearing []string) Resolver {
	if loadBearing == nil {
		loadBearing = DefaultLoadBearingParams
	}
	return Resolver{keep: append([]string(nil), loadBearing...)}
}

// CanonicalURL canonicalizes url with the resolver's parameter allowlist.
func (r Resolver) CanonicalURL(url string) string {
	return textnorm.CanonicalURL(url, r.keep)
}

// Resolve returns the hex SHA-256 of "canonical_url|normalized_name".
// Equal canonical inputs always produce equal IDs.
func (r Resolver) Resolve(url, name string) evidence.ID {
	key := textnorm.NormalizeName(name).Key
	return digest(r.CanonicalURL(url) + "|" + key)
}

// Faculty returns the stable ID of a faculty slug.
func Faculty(slug string) evidence.ID {
	return digest("faculty:" + strings.ToLower(strings.TrimSpace(slug)))
}

func digest(s string) evidence.ID {
	sum := sha256.Sum256([]byte(s))
	return evidence.ID(hex.EncodeToString(sum[:]))
}
