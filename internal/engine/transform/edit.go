package transform

import (
	"unicode/utf8"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/selection"
	"github.com/dshills/blockpad/internal/engine/state"
)

// SplitBlock applies Enter. A range selection is removed first. With the
// caret before the end of its block the block is split and the caret moves to
// the start of the second half; at the end of the block a new empty
// paragraph is inserted after it and receives the caret.
func SplitBlock(s state.EditorState) (state.EditorState, error) {
	doc, caret, err := caretState(s)
	if err != nil {
		return s, err
	}
	b, _ := doc.Block(caret.Key)

	if caret.Offset < b.Len() {
		next, newKey, err := doc.SplitBlock(caret.Key, caret.Offset)
		if err != nil {
			return s, err
		}
		return s.Push(next, selection.Caret(newKey, 0), state.ChangeSplitBlock)
	}

	nb := document.NewBlock(doc.NewKey(), document.TypeParagraph, "")
	next, err := doc.InsertBlockAfter(caret.Key, nb)
	if err != nil {
		return s, err
	}
	return s.Push(next, selection.Caret(nb.Key(), 0), state.ChangeInsertBlock)
}

// InsertSoftNewline applies Shift+Enter: a newline character is inserted in
// the current block and the caret advances past it.
func InsertSoftNewline(s state.EditorState) (state.EditorState, error) {
	return insert(s, "\n", state.ChangeSoftNewline)
}

// InsertCharacters inserts text at the caret with the current inline style,
// replacing any selected range.
func InsertCharacters(s state.EditorState, text string) (state.EditorState, error) {
	if text == "" {
		return s, ErrNoEffect
	}
	return insert(s, text, state.ChangeInsertCharacters)
}

func insert(s state.EditorState, text string, change state.ChangeType) (state.EditorState, error) {
	styles := s.CurrentInlineStyle()
	doc, caret, err := caretState(s)
	if err != nil {
		return s, err
	}

	next, err := doc.InsertText(caret.Key, caret.Offset, text, styles)
	if err != nil {
		return s, err
	}
	return s.Push(next, selection.Caret(caret.Key, caret.Offset+utf8.RuneCountInString(text)), change)
}

// RemoveSelection deletes the selected range and collapses the caret to its
// start. A collapsed selection has no effect.
func RemoveSelection(s state.EditorState) (state.EditorState, error) {
	if s.Selection().IsCollapsed() {
		return s, ErrNoEffect
	}
	doc, caret, err := caretState(s)
	if err != nil {
		return s, err
	}
	return s.Push(doc, selection.Caret(caret.Key, caret.Offset), state.ChangeRemoveRange)
}

// Backspace deletes backwards. A range selection is removed. At offset 0 a
// styled block is reset to unstyled first; a paragraph is merged into the
// block above it.
func Backspace(s state.EditorState) (state.EditorState, error) {
	if !s.Selection().IsCollapsed() {
		return RemoveSelection(s)
	}
	b, err := activeBlock(s)
	if err != nil {
		return s, err
	}
	doc := s.Document()
	offset := s.Selection().FocusOffset

	if offset > 0 {
		next, err := doc.DeleteText(b.Key(), offset-1, offset)
		if err != nil {
			return s, err
		}
		return s.Push(next, selection.Caret(b.Key(), offset-1), state.ChangeBackspace)
	}

	if !b.Type().IsParagraph() {
		next, err := doc.SetBlockType(b.Key(), b.Key(), document.TypeUnstyled)
		if err != nil {
			return s, err
		}
		return s.Push(next, selection.Caret(b.Key(), 0), state.ChangeBlockType)
	}

	prev, ok := doc.BlockBefore(b.Key())
	if !ok {
		return s, ErrNoEffect
	}
	next, err := doc.MergeWithNext(prev.Key())
	if err != nil {
		return s, err
	}
	return s.Push(next, selection.Caret(prev.Key(), prev.Len()), state.ChangeBackspace)
}

// Delete deletes forwards. A range selection is removed; at the end of a
// block the following block is merged into it.
func Delete(s state.EditorState) (state.EditorState, error) {
	if !s.Selection().IsCollapsed() {
		return RemoveSelection(s)
	}
	b, err := activeBlock(s)
	if err != nil {
		return s, err
	}
	doc := s.Document()
	offset := s.Selection().FocusOffset

	if offset < b.Len() {
		next, err := doc.DeleteText(b.Key(), offset, offset+1)
		if err != nil {
			return s, err
		}
		return s.Push(next, selection.Caret(b.Key(), offset), state.ChangeDelete)
	}

	if _, ok := doc.BlockAfter(b.Key()); !ok {
		return s, ErrNoEffect
	}
	next, err := doc.MergeWithNext(b.Key())
	if err != nil {
		return s, err
	}
	return s.Push(next, selection.Caret(b.Key(), offset), state.ChangeDelete)
}
