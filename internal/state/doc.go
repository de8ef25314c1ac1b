// Package state holds the current catalog version shared by the refresh workflow,
// the CLI and the UI.
//
// # Overview
//
// The Store is the Catalog Store of shelfscan: it owns exactly one catalog version at
// a time and swaps it wholesale when a load succeeds. Nothing ever edits products in
// place; every derived view (results, suggestions, stats) is recomputed from a
// snapshot.
//
//	Writer (refresh / startup):      Readers (UI, CLI):
//	┌──────────────────────┐        ┌──────────────────────┐
//	│ FetchProducts()      │        │                      │
//	│      ↓               │        │                      │
//	│ store.Replace()      │───────→│ store.Snapshot()     │
//	│  or RecordError()    │ (lock) │      ↓               │
//	└──────────────────────┘        │ query.FilterAndSort  │
//	                                └──────────────────────┘
//
// # Core Types
//
// Catalog:
//   - Ordered product slice plus a monotonically increasing Version
//   - Products are unique by id; Replace drops later duplicates
//
// Snapshot:
//   - Catalog, Loaded, LastUpdated, LastError, ConsecutiveFailures
//   - Returned by value with a cloned product slice
//
// # Update Semantics
//
//	// Success: next version installed atomically
//	catalog, dropped := store.Replace(products)
//	→ snapshot.Catalog.Version = previous + 1
//	→ snapshot.LastError = nil
//
//	// Failure: catalog untouched, error recorded
//	store.RecordError(err)
//	→ snapshot.Catalog = <unchanged>
//	→ snapshot.ConsecutiveFailures++
//
// # Concurrency Model
//
// Replace and RecordError take the write lock; Snapshot and Catalog take the read
// lock and copy. A reader that already holds a snapshot keeps seeing its version
// after a replacement.
//
// # Testing Considerations
//
// The zero Store is ready to use and reports an empty catalog at Version 0.
package state
