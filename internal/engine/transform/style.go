package transform

import (
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/state"
)

// ToggleInlineStyle toggles style. With a caret only the style of the next
// insertion changes. With a range the style is removed when every selected
// character already carries it and applied otherwise.
func ToggleInlineStyle(s state.EditorState, style document.Style) (state.EditorState, error) {
	if style == "" {
		return s, document.ErrEmptyStyle
	}
	if _, err := activeBlock(s); err != nil {
		return s, err
	}

	sel := s.Selection()
	if sel.IsCollapsed() {
		return s.WithInlineStyleOverride(s.CurrentInlineStyle().Toggle(style)), nil
	}

	doc := s.Document()
	styled := true
	selected := 0
	err := forEachSelected(doc, sel, func(b document.Block, from, to int) error {
		if from >= to {
			return nil
		}
		selected += to - from
		if !doc.HasStyleOver(b.Key(), from, to, style) {
			styled = false
		}
		return nil
	})
	if err != nil {
		return s, err
	}
	if selected == 0 {
		return s, ErrNoEffect
	}

	next := doc
	err = forEachSelected(doc, sel, func(b document.Block, from, to int) error {
		if from >= to {
			return nil
		}
		var err error
		if styled {
			next, err = next.RemoveInlineStyle(b.Key(), from, to, style)
		} else {
			next, err = next.ApplyInlineStyle(b.Key(), from, to, style)
		}
		return err
	})
	if err != nil {
		return s, err
	}
	return s.Push(next, sel, state.ChangeInlineStyle)
}

// SetBlockType sets the type of every selected block.
func SetBlockType(s state.EditorState, typ document.BlockType) (state.EditorState, error) {
	if _, err := activeBlock(s); err != nil {
		return s, err
	}
	doc := s.Document()
	start, end := s.Selection().Bounds(doc)

	next, err := doc.SetBlockType(start.Key, end.Key, typ)
	if err != nil {
		return s, err
	}
	return s.Push(next, s.Selection(), state.ChangeBlockType)
}

// ToggleBlockType sets typ on the selected blocks, or resets them to
// unstyled when the active block already has typ.
func ToggleBlockType(s state.EditorState, typ document.BlockType) (state.EditorState, error) {
	b, err := activeBlock(s)
	if err != nil {
		return s, err
	}
	if b.Type() == typ {
		typ = document.TypeUnstyled
	}
	return SetBlockType(s, typ)
}
