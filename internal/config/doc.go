// Package config provides the configuration system for blockpad.
//
// Configuration is read from a single file whose format is chosen by its
// extension: TOML (.toml) or YAML (.yaml, .yml). A missing file yields the
// built-in defaults. Environment variables prefixed with BLOCKPAD_ override
// file values.
//
// # Sections
//
//	[storage]   backend (memory, file, sqlite), path, key
//	[log]       level (debug, info, warn, error), format (text, json)
//	[history]   max_entries
//	[styles]    rendering directives per inline style or block type
//	[[triggers]] ordered before-input trigger rules
//	[keymap]    key specification to command overrides
//
// # Example
//
//	[storage]
//	backend = "sqlite"
//	path = "~/.local/share/blockpad/blockpad.db"
//
//	[styles.color-red]
//	fg = "red"
//
//	[styles.highlight]
//	bg = "yellow"
//
//	[[triggers]]
//	name = "quote"
//	pattern = '>\s'
//	block_type = "blockquote"
//
//	[keymap]
//	"Ctrl+K" = "style.STRIKETHROUGH"
//
// # Live Reload
//
// Watcher observes the configuration file with fsnotify and delivers a
// freshly loaded Config after every change, so the terminal host can apply
// new styles without restarting.
package config
