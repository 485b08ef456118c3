// Package key provides key event types and key specification parsing.
//
// This package defines the types used to describe keyboard input to the
// editing engine:
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: modifier key bit set (Shift, Ctrl, Alt, Meta)
//   - Event: a single key press with modifiers
//
// # Key Specifications
//
// Key specifications used in keymaps and configuration files can be written
// in two forms:
//
//   - Plus form: "Enter", "Shift+Enter", "Ctrl+B", "Ctrl+Shift+Z"
//   - Bracket form: "<CR>", "<S-CR>", "<C-b>", "<BS>"
//
// Both forms parse to the same Event, and Event.Spec returns the canonical
// plus form used as a lookup key.
package key
