// Package adapter holds the institution-specific extraction layer.
//
// Each institution is served by an Adapter with a fixed capability set:
// enumerate sub-pages, extract raw candidates, and discover admission PDF
// links. Adapters are registered in a static table keyed by institution slug;
// there is no loading by name at runtime. Adapters work on saved HTML
// snapshots and never fetch anything themselves.
package adapter
