// Package evidence defines the typed records that flow through the fusion
// engine: raw candidates from extraction, validated entities, quarantine
// records, PDF candidates, and fused results.
//
// The package carries no behaviour beyond construction and field access.
// Nullable facts are pointers so that an explicitly empty value ("") is never
// confused with an absent one (nil). Identifiers are opaque digests produced
// by internal/identity; this package only stores them.
package evidence
