// Package state provides thread-safe access to a configuration editing
// session.
//
// # Overview
//
// A kconfig.Config does no locking of its own. Store wraps one together with
// the value file it was loaded from and is the only path through which the
// interface reads or changes values.
//
// # Core Types
//
// Store:
//   - Owns the tree and the output path
//   - Uses sync.RWMutex; View, Value and Snapshot take the read lock
//   - Set, Toggle, Save, Reload and Notify take the write lock
//
// Snapshot:
//   - Copy of the session summary: main menu title, output path, dirty flag
//   - Carries the status line shown by the UI and the last error, if any
//
// # Update Semantics
//
// Every mutating call records its outcome in the snapshot:
//
//	store.Set("PORT", "8080")
//	→ value normalized and assigned
//	→ Dirty set when the value changed
//	→ Status = "PORT = 8080", LastError = nil
//
//	store.Set("PORT", "http")
//	→ value unchanged
//	→ Status and LastError describe the conversion failure
//
// Save clears Dirty and stamps LastSaved. Reload replaces values from the
// output file and clears Dirty; a failed Reload leaves values untouched.
//
// # Rendering
//
// View hands the tree to a callback under the read lock:
//
//	store.View(func(cfg *kconfig.Config) {
//		entries, err = cfg.VisibleEntries(menu.Entries, depends)
//	})
//
// The callback must not keep references that it mutates later.
package state
