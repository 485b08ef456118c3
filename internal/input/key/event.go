package key

import "unicode"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if the event inserts a printable character: a rune
// without Ctrl, Alt or Meta.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if a modifier other than Shift is pressed on a
// character, or any modifier on a special key. Shift is part of the character
// itself.
func (e Event) IsModified() bool {
	if e.Key == KeyRune {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the event in the form used for keymap lookups: Ctrl, Alt
// and Meta characters are lower-cased, plain characters never carry Shift.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	if e.IsModified() {
		e.Rune = unicode.ToLower(e.Rune)
		return e
	}
	e.Modifiers = e.Modifiers.Without(ModShift)
	return e
}

// Spec returns the canonical specification of the event, such as "Enter",
// "Shift+Enter", "Ctrl+b" or "a". Parse(e.Spec()) yields e.Normalize().
func (e Event) Spec() string {
	e = e.Normalize()

	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}

	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// String returns the canonical specification.
func (e Event) String() string {
	return e.Spec()
}

// Matches returns true if e and other describe the same key chord.
func (e Event) Matches(other Event) bool {
	return e.Normalize() == other.Normalize()
}
