// Package config loads mesonconfig tool settings.
//
// # Overview
//
// Settings say where the option definitions and the value file live and tune
// a few behaviors of the interface. Every field is optional and the tool
// works without any settings file at all.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mesonconfig/config.toml (default)
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// Command-line flags override whatever Load returns; that merge happens in
// the caller.
//
// # Default Values
//
//   - Definitions file: Kconfig (relative to the working directory)
//   - Value file: .config
//   - Maximum source nesting: 16
//   - Minimum terminal size check: enabled
//   - Log file: none
//
// # TOML Format
//
//	kconfig_file = "~/src/project/Kconfig"
//	output_file = "~/src/project/.config"
//	max_include_depth = 8
//	disable_min_size_check = false
//	log_file = "~/.cache/mesonconfig.log"
//
// Tilde expansion is applied to every path field a file sets. Defaults stay
// relative so they follow the working directory.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and a negative max_include_depth
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load settings: %w", err)
//	}
//	tree, err := kconfig.Open(cfg.KconfigFile, kconfig.WithMaxIncludeDepth(cfg.MaxIncludeDepth))
package config
