// Package validator decides whether a raw candidate names a study program.
//
// Classify runs four short-circuiting stages (structural, noise,
// plausibility, statistics) and returns exactly one verdict: ACCEPT with a
// built Entity, REJECT for administrative noise, or QUARANTINE for malformed
// input. Decisions are values; nothing here returns an error or panics.
// Every non-accepted decision is logged with its reason and stage so the
// denylist and thresholds can be audited.
package validator
