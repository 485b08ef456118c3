// Package keymap provides key binding management for the blockpad editor.
//
// The keymap system maps single key chords to editing command names. It
// supports layered precedence so user bindings from the configuration file
// override the built-in defaults.
//
// # Key Concepts
//
// Keymap: A named collection of bindings with a priority.
//
// Binding: Maps a key specification to a command name.
//
// Registry: Holds all keymaps and answers lookups.
//
// # Binding Precedence
//
// When several keymaps bind the same chord:
//  1. Keymap priority (higher wins)
//  2. Registration order (later wins)
//
// A binding whose command is empty unbinds the chord: lookups stop there and
// report no binding, which lets user configuration remove a default.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	if err := registry.Register(keymap.Default()); err != nil {
//	    return err
//	}
//
//	if b, ok := registry.Lookup(ev); ok {
//	    // dispatch b.Command
//	}
package keymap
