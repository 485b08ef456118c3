// Package transform implements the editing transformations of the blockpad
// engine.
//
// Every function takes an EditorState and returns a new EditorState; none of
// them mutate their input. A returned error means the state was left as is:
// ErrNoEffect marks edits that are valid but change nothing (backspace at the
// very start of the document), anything else indicates a selection that does
// not fit its document.
//
// # Enter
//
// SplitBlock implements the Enter protocol: with the caret inside a block the
// block is split and the caret lands at offset 0 of the new second block; with
// the caret at the end of a block a new empty paragraph is inserted after it
// and receives the caret.
//
// # Before-input
//
// HandleBeforeInput probes the active block text plus the pending character
// against an ordered trigger list. On a match the trigger text is erased, the
// block type and inline style of the rule are applied, the caret moves to
// offset 0 of the same block and the pending character is consumed.
package transform

import (
	"errors"
	"fmt"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/selection"
	"github.com/dshills/blockpad/internal/engine/state"
)

// Errors returned by transformations.
var (
	// ErrNoEffect indicates a valid edit that leaves the state unchanged.
	ErrNoEffect = errors.New("edit has no effect")

	// ErrNoActiveBlock indicates the selection does not reference a block of the document.
	ErrNoActiveBlock = errors.New("selection has no active block")
)

// caretState validates s and returns its document and the start of its
// selection with the selected text removed.
func caretState(s state.EditorState) (*document.Document, selection.Point, error) {
	doc := s.Document()
	sel := s.Selection()
	if err := sel.Validate(doc); err != nil {
		return doc, selection.Point{}, fmt.Errorf("%w: %w", ErrNoActiveBlock, err)
	}

	start, end := sel.Bounds(doc)
	if sel.IsCollapsed() {
		return doc, start, nil
	}

	next, err := doc.RemoveRange(start.Key, start.Offset, end.Key, end.Offset)
	if err != nil {
		return doc, selection.Point{}, err
	}
	return next, start, nil
}

// activeBlock returns the block holding the start of the selection.
func activeBlock(s state.EditorState) (document.Block, error) {
	doc := s.Document()
	if err := s.Selection().Validate(doc); err != nil {
		return document.Block{}, fmt.Errorf("%w: %w", ErrNoActiveBlock, err)
	}
	b, _ := s.ActiveBlock()
	return b, nil
}

// forEachSelected calls fn for every block touched by the selection with the
// selected part [from, to) of that block.
func forEachSelected(doc *document.Document, sel selection.Selection, fn func(b document.Block, from, to int) error) error {
	start, end := sel.Bounds(doc)
	si, ei := doc.IndexOf(start.Key), doc.IndexOf(end.Key)
	if si < 0 || ei < 0 {
		return ErrNoActiveBlock
	}
	for i := si; i <= ei; i++ {
		b := doc.At(i)
		from, to := 0, b.Len()
		if i == si {
			from = start.Offset
		}
		if i == ei {
			to = end.Offset
		}
		if err := fn(b, from, to); err != nil {
			return err
		}
	}
	return nil
}
