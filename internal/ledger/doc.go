// Package ledger persists fusion runs in SQLite as an append-only audit
// trail.
//
// The Store records one row per run (manifest, config hash, stats), one row
// per fused result, every alternate value that lost arbitration, and every
// quarantine record. Nothing is ever updated or deleted after insertion:
// the quarantine table carries triggers that abort UPDATE and DELETE, and the
// package exposes no removal API.
//
// A single process may write to a ledger at a time; Open takes an advisory
// file lock next to the database and fails with ErrLocked when another
// writer holds it. Schema changes bump the version in schema.go; users move
// the old database aside to adopt the new schema.
package ledger
