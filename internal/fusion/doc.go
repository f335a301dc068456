// Package fusion joins validated HTML entities to ranked PDF rows and
// arbitrates their numeric fields.
//
// Fuse is a total map: every input entity yields exactly one FusionResult in
// input order. A row is eligible for an entity only when level, faculty and
// language agree and the name keys clear the similarity threshold. The first
// eligible document in ranked order supplies the primary row; every other
// eligible row is kept on the result for audit. Values that lose arbitration
// are preserved as alternates and never dropped.
//
// The engine holds no mutable state and is safe for concurrent use across
// faculty partitions.
package fusion
