// Package config loads edtr settings.
//
// Settings come from three layers, lowest priority first:
//
//   - built-in defaults (Default)
//   - a TOML file, usually ~/.config/edtr/config.toml
//   - EDTR_* environment variables
//
// A missing file is not an error. Use Load for the full chain, or Parse
// when the TOML is already in memory.
//
// Example file:
//
//	[editor]
//	default_plugin = "rows"
//	clipboard_limit = 3
//	history_limit = 1000
//	commit_debounce = "1s"
//
//	[plugins]
//	scripts = ["~/.config/edtr/plugins/*.lua"]
//
//	[logging]
//	level = "info"
//
//	[storage]
//	path = "~/.local/share/edtr/snapshots.db"
package config
