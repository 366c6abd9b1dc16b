// Package archon implements an archetype-based entity-component storage
// engine. Entities are grouped into archetypes by the exact set of
// component types they hold; each archetype stores its components in
// type-erased, aligned columnar arrays and iterates them by row.
//
// The package has no I/O and no internal synchronization. All operations
// are synchronous and complete without suspension. Concurrent access from
// multiple goroutines is undefined behavior.
package archon
