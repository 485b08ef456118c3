// Package state provides EditorState, the (Document, Selection) snapshot that
// flows through the transformation engine.
//
// EditorState is immutable. Every change produces a fresh value via Push or
// ForceSelection; the previous value stays valid and can be kept as an undo
// snapshot.
package state

import (
	"fmt"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/selection"
)

// ChangeType labels the edit that produced an EditorState.
type ChangeType string

const (
	ChangeNone             ChangeType = ""
	ChangeInsertCharacters ChangeType = "insert-characters"
	ChangeBackspace        ChangeType = "backspace-character"
	ChangeDelete           ChangeType = "delete-character"
	ChangeRemoveRange      ChangeType = "remove-range"
	ChangeSplitBlock       ChangeType = "split-block"
	ChangeInsertBlock      ChangeType = "insert-block"
	ChangeSoftNewline      ChangeType = "soft-newline"
	ChangeReplaceText      ChangeType = "replace-text"
	ChangeBlockType        ChangeType = "change-block-type"
	ChangeInlineStyle      ChangeType = "change-inline-style"
	ChangeSelection        ChangeType = "change-selection"
	ChangeLoad             ChangeType = "load"
	ChangeUndo             ChangeType = "undo"
	ChangeRedo             ChangeType = "redo"
)

// EditorState pairs a Document with a Selection valid for it.
type EditorState struct {
	doc        *document.Document
	sel        selection.Selection
	override   document.StyleSet
	overridden bool
	lastChange ChangeType
}

// NewEmpty returns a state holding a single empty block with the caret at 0.
func NewEmpty() EditorState {
	return CreateWithContent(document.Empty())
}

// CreateWithContent returns a state for doc with the caret at the start of the
// first block.
func CreateWithContent(doc *document.Document) EditorState {
	if doc == nil {
		doc = document.Empty()
	}
	return EditorState{
		doc: doc,
		sel: selection.Caret(doc.First().Key(), 0),
	}
}

// Document returns the current document.
func (s EditorState) Document() *document.Document {
	if s.doc == nil {
		return document.Empty()
	}
	return s.doc
}

// Selection returns the current selection.
func (s EditorState) Selection() selection.Selection {
	return s.sel
}

// LastChange returns the change type that produced this state.
func (s EditorState) LastChange() ChangeType {
	return s.lastChange
}

// InlineStyleOverride returns the pending style set for the next insertion,
// if one is set.
func (s EditorState) InlineStyleOverride() (document.StyleSet, bool) {
	return s.override, s.overridden
}

// WithInlineStyleOverride returns a state whose next insertion uses styles.
func (s EditorState) WithInlineStyleOverride(styles document.StyleSet) EditorState {
	s.override = styles
	s.overridden = true
	s.lastChange = ChangeInlineStyle
	return s
}

// ClearInlineStyleOverride returns a state without a pending style set.
func (s EditorState) ClearInlineStyleOverride() EditorState {
	s.override = nil
	s.overridden = false
	return s
}

// ForceSelection returns a state with sel after validating it against the
// current document.
func (s EditorState) ForceSelection(sel selection.Selection) (EditorState, error) {
	valid, err := selection.Force(s.Document(), sel)
	if err != nil {
		return s, err
	}
	s.sel = valid
	s.override = nil
	s.overridden = false
	s.lastChange = ChangeSelection
	return s, nil
}

// Push returns a state with a new document and a selection valid for it. The
// selection is validated; an inconsistent pair is rejected and the receiver
// is returned unchanged. Any inline style override is cleared.
func (s EditorState) Push(doc *document.Document, sel selection.Selection, change ChangeType) (EditorState, error) {
	if doc == nil {
		return s, fmt.Errorf("push %s: nil document", change)
	}
	valid, err := selection.Force(doc, sel)
	if err != nil {
		return s, fmt.Errorf("push %s: %w", change, err)
	}
	return EditorState{
		doc:        doc,
		sel:        valid,
		lastChange: change,
	}, nil
}

// ActiveBlock returns the block holding the start of the selection.
func (s EditorState) ActiveBlock() (document.Block, bool) {
	doc := s.Document()
	return doc.Block(s.sel.Start(doc).Key)
}

// CurrentInlineStyle returns the styles the next inserted character gets.
// A pending override wins. Otherwise a caret takes the style of the character
// before it, or the first character of its block, or the last character of
// the nearest non-empty block above. A range takes the style of its first
// character.
func (s EditorState) CurrentInlineStyle() document.StyleSet {
	if s.overridden {
		return s.override
	}

	doc := s.Document()
	start := s.sel.Start(doc)
	b, ok := doc.Block(start.Key)
	if !ok {
		return nil
	}

	if !s.sel.IsCollapsed() {
		if start.Offset < b.Len() {
			return b.StylesAt(start.Offset)
		}
		return nil
	}

	switch {
	case start.Offset > 0:
		return b.StylesAt(start.Offset - 1)
	case b.Len() > 0:
		return b.StylesAt(0)
	}

	for key := b.Key(); ; {
		prev, ok := doc.BlockBefore(key)
		if !ok {
			return nil
		}
		if prev.Len() > 0 {
			return prev.StylesAt(prev.Len() - 1)
		}
		key = prev.Key()
	}
}

// String returns a debug representation.
func (s EditorState) String() string {
	return fmt.Sprintf("EditorState{blocks: %d, selection: %s, change: %q}",
		s.Document().Len(), s.sel, s.lastChange)
}
