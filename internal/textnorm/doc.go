// Package textnorm turns scraped Romanian text into comparison-stable forms.
//
// Clean repairs UTF-8 text that was decoded as Windows-1252 or Latin-1,
// composes it to NFC, replaces cedilla diacritics with their comma-below
// forms, and collapses whitespace. Normalize additionally lowercases, and
// Fold strips diacritics and punctuation for token matching. NormalizeName
// reduces a program title to a NameKey used by identity resolution and
// fusion. Every function here is pure and idempotent.
package textnorm
