package transform

import (
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/selection"
	"github.com/dshills/blockpad/internal/engine/state"
)

// Direction is a caret movement.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	DocumentStart
	DocumentEnd
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case LineStart:
		return "line-start"
	case LineEnd:
		return "line-end"
	case DocumentStart:
		return "document-start"
	case DocumentEnd:
		return "document-end"
	default:
		return "unknown"
	}
}

// Move moves the caret. A range selection collapses to its start for Left
// and its end for Right; other directions move from the focus.
func Move(s state.EditorState, dir Direction) (state.EditorState, error) {
	doc := s.Document()
	sel := s.Selection()
	if err := sel.Validate(doc); err != nil {
		return s, err
	}

	if !sel.IsCollapsed() {
		start, end := sel.Bounds(doc)
		switch dir {
		case Left:
			return s.ForceSelection(selection.Caret(start.Key, start.Offset))
		case Right:
			return s.ForceSelection(selection.Caret(end.Key, end.Offset))
		}
	}

	p, ok := step(doc, sel.Focus(), dir)
	if !ok {
		return s, ErrNoEffect
	}
	return s.ForceSelection(selection.Caret(p.Key, p.Offset))
}

// Extend moves the focus of the selection and keeps the anchor.
func Extend(s state.EditorState, dir Direction) (state.EditorState, error) {
	doc := s.Document()
	sel := s.Selection()
	if err := sel.Validate(doc); err != nil {
		return s, err
	}

	p, ok := step(doc, sel.Focus(), dir)
	if !ok {
		return s, ErrNoEffect
	}
	return s.ForceSelection(selection.Range(sel.Anchor(), p))
}

// SelectAll selects the whole document.
func SelectAll(s state.EditorState) (state.EditorState, error) {
	doc := s.Document()
	first, last := doc.First(), doc.Last()
	return s.ForceSelection(selection.Range(
		selection.Point{Key: first.Key(), Offset: 0},
		selection.Point{Key: last.Key(), Offset: last.Len()},
	))
}

// step returns the position reached from p in dir, or false when p cannot
// move further.
func step(doc *document.Document, p selection.Point, dir Direction) (selection.Point, bool) {
	b, ok := doc.Block(p.Key)
	if !ok {
		return p, false
	}
	text := []rune(b.Text())
	line, col := lineCol(text, p.Offset)

	var q selection.Point
	switch dir {
	case Left:
		if p.Offset > 0 {
			q = selection.Point{Key: p.Key, Offset: p.Offset - 1}
		} else if prev, ok := doc.BlockBefore(p.Key); ok {
			q = selection.Point{Key: prev.Key(), Offset: prev.Len()}
		} else {
			return p, false
		}
	case Right:
		if p.Offset < b.Len() {
			q = selection.Point{Key: p.Key, Offset: p.Offset + 1}
		} else if next, ok := doc.BlockAfter(p.Key); ok {
			q = selection.Point{Key: next.Key(), Offset: 0}
		} else {
			return p, false
		}
	case Up:
		if line > 0 {
			q = selection.Point{Key: p.Key, Offset: offsetAt(text, line-1, col)}
		} else if prev, ok := doc.BlockBefore(p.Key); ok {
			pt := []rune(prev.Text())
			q = selection.Point{Key: prev.Key(), Offset: offsetAt(pt, lineCount(pt)-1, col)}
		} else {
			q = selection.Point{Key: p.Key, Offset: 0}
		}
	case Down:
		if line < lineCount(text)-1 {
			q = selection.Point{Key: p.Key, Offset: offsetAt(text, line+1, col)}
		} else if next, ok := doc.BlockAfter(p.Key); ok {
			q = selection.Point{Key: next.Key(), Offset: offsetAt([]rune(next.Text()), 0, col)}
		} else {
			q = selection.Point{Key: p.Key, Offset: b.Len()}
		}
	case LineStart:
		q = selection.Point{Key: p.Key, Offset: p.Offset - col}
	case LineEnd:
		q = selection.Point{Key: p.Key, Offset: offsetAt(text, line, len(text))}
	case DocumentStart:
		q = selection.Point{Key: doc.First().Key(), Offset: 0}
	case DocumentEnd:
		last := doc.Last()
		q = selection.Point{Key: last.Key(), Offset: last.Len()}
	default:
		return p, false
	}
	return q, q != p
}

// lineCol returns the soft line and column of offset within text.
func lineCol(text []rune, offset int) (line, col int) {
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

// lineCount returns the number of soft lines in text.
func lineCount(text []rune) int {
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// offsetAt returns the offset of column col on soft line line, clamped to the
// line length.
func offsetAt(text []rune, line, col int) int {
	offset := 0
	for l := 0; l < line && offset < len(text); offset++ {
		if text[offset] == '\n' {
			l++
		}
	}
	for c := 0; c < col && offset < len(text) && text[offset] != '\n'; c++ {
		offset++
	}
	return offset
}
