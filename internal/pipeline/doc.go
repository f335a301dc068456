// Package pipeline runs one fusion pass over a closed set of raw candidates.
//
// A run classifies every candidate, merges duplicate entities, partitions
// entities and PDF candidates by faculty, then ranks and fuses each
// partition on a bounded worker group. Partitions share nothing, so the
// output is identical for any worker count: results follow the order in
// which entities were first seen and quarantine records follow input order.
package pipeline
