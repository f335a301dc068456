// Package language maps the language names that appear in Romanian program
// titles ("în limba engleză", "English", "engl.") onto ISO 639-1 codes.
//
// Word lookups expect folded input: lowercase with diacritics removed. Plain
// two-letter codes are never matched as words because several of them ("de",
// "it") are ordinary Romanian tokens.
package language
