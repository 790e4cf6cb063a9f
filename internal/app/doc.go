// Package app wires settings, logging, the Kconfig engine and the UI into
// a mesonconfig session.
//
// # Startup
//
//  1. Load tool settings from ~/.config/mesonconfig/config.toml (or
//     Options.SettingsPath); flag values in Options take precedence
//  2. Build a charmbracelet/log logger: the log file when one is set,
//     otherwise Options.LogOutput, otherwise nothing
//  3. Parse the Kconfig tree with kconfig.Open
//  4. Apply saved values from the output file when it exists
//  5. Wrap the tree in a state.Store
//
// Open performs these steps and returns a Session. The CLI subcommands use
// the Session directly; Run additionally loads preferences and blocks in
// the Bubble Tea UI.
//
// # Errors
//
// Settings, parse and value errors are returned wrapped, so callers can
// still match kconfig sentinel kinds with errors.Is. A missing output file
// only means no values have been saved yet and is logged at debug level.
package app
