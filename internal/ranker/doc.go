// Package ranker orders admission PDF candidates so the most likely seat
// table for the target year comes first.
//
// Scoring is additive over folded link text, anchor text and document URL:
// the exact target year, a previous year inside the fallback window, and
// three keyword groups (high-value, low-value, negative) each contribute
// once. With YearStrict, candidates carrying the target year always outrank
// those that do not. Rank never drops candidates and keeps input order for
// ties, so identical inputs always produce identical orderings.
package ranker
