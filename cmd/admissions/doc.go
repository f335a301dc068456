// Package main hosts the admissions CLI entrypoint and command graph.
//
// The Cobra command tree loads evidence bundles, runs them through the
// validator, ranker and fusion engine, and records each run in the SQLite
// ledger. Extraction from saved institution pages, ledger inspection, and
// configuration scaffolding are exposed as separate commands.
//
// Keep this package lean: behaviour belongs in the internal packages, and
// commands here only resolve configuration, choose table or JSON output, and
// report errors.
package main
