package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification into a normalized Event.
//
// Supported formats:
//   - Single character: "a", "*", "#"
//   - Key names: "Enter", "Backspace", "Space", "Esc"
//   - Plus form: "Ctrl+B", "Shift+Enter", "Ctrl+Shift+Z", "Ctrl++"
//   - Bracket form: "<C-b>", "<S-CR>", "<BS>", "<C-S-z>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracket(spec[1 : len(spec)-1])
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parsePlus(spec)
	}
	return parseKey(spec, ModNone)
}

// parseBracket parses the inside of "<C-b>" style specifications.
func parseBracket(inner string) (Event, error) {
	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 1 {
		// "<C-->" binds the minus key.
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone || len(strings.TrimSpace(p)) != 1 {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in <%s>", ErrInvalidSpec, p, inner)
		}
		mods = mods.With(mod)
	}
	return parseKey(keyPart, mods)
}

// parsePlus parses "Ctrl+Shift+Z" style specifications.
func parsePlus(spec string) (Event, error) {
	keyPart := ""
	if strings.HasSuffix(spec, "++") {
		keyPart = "+"
		spec = strings.TrimSuffix(spec, "++")
	} else {
		i := strings.LastIndex(spec, "+")
		keyPart = spec[i+1:]
		spec = spec[:i]
	}

	var mods Modifier
	for _, p := range strings.Split(spec, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(keyPart, mods)
}

// parseKey parses a key name or single character with known modifiers.
func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	switch strings.ToLower(name) {
	case "space":
		return NewRuneEvent(' ', mods).Normalize(), nil
	case "lt":
		return NewRuneEvent('<', mods).Normalize(), nil
	case "gt":
		return NewRuneEvent('>', mods).Normalize(), nil
	}

	runes := []rune(name)
	if len(runes) != 1 || !unicode.IsPrint(runes[0]) {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	return NewRuneEvent(runes[0], mods).Normalize(), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// NormalizeSpec parses and re-formats a key specification to its canonical
// form.
func NormalizeSpec(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.Spec(), nil
}
