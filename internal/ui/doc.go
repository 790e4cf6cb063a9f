// Package ui provides the menuconfig-style terminal interface for mesonconfig.
//
// # Architecture Overview
//
// The interface is a Bubble Tea program. Model holds a navigation stack of
// menu frames over a state.Store; every read of option values goes through
// the store so rendering never races a mutation.
//
// # Package Structure
//
//   - app.go: Model, key dispatch, screen rendering and the Run function
//   - menu.go: navigation frames and the text of each menu row
//   - editor.go: value editor for int and string options
//   - dialog.go: the save-on-exit question
//   - help.go: key help and the per-entry help viewer
//   - keys.go: key bindings, shared with the bubbles help footer
//   - theme.go: color themes, cycled with T and stored in preferences
//
// # Menu Rows
//
//	[*] Enable debugging          bool, on
//	[ ] Verbose output            bool, off
//	(8080) Listen port            int or string value
//	    Networking  --->          submenu
//	    Transport (choice)  --->  choice block
//	    *** Generated options *** comment
//
// Only visible entries are listed. Each frame remembers the dependency
// context it was entered with: entering a menu adds the menu's own
// expression, entering a choice does not. Changing a value re-filters the
// current frame, so rows can appear or disappear under the cursor.
//
// # Exit Flow
//
// esc at the root quits directly when nothing changed. Otherwise a dialog
// asks whether to save; answering yes writes the value file first and stays
// open if that fails. ctrl+c always quits without saving.
//
// # Terminal Size
//
// Below MinWidth x MinHeight a resize notice replaces the menu unless the
// check is disabled in settings.
package ui
