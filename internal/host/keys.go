package host

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockpad/internal/input/key"
)

// TranslateKey converts a tcell key event to a key.Event. It reports false
// for keys the editor has no name for.
func TranslateKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := translateMod(ev.Modifiers())

	k := ev.Key()
	if k == tcell.KeyRune {
		return key.NewRuneEvent(ev.Rune(), mods).Normalize(), true
	}
	if named, ok := namedKeys[k]; ok {
		return key.NewSpecialEvent(named, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)).Normalize(), true
	}
	return key.Event{}, false
}

// namedKeys maps tcell keys to editor keys. Terminals report Tab, Enter and
// Backspace as control characters, so these entries win over the Ctrl range.
var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

func translateMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// isPrintable reports whether r can be drawn in a single cell.
func isPrintable(r rune) bool {
	return r != '\t' && unicode.IsPrint(r)
}
