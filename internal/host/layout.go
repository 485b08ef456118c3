package host

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/state"
)

// Cell is one drawn character.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Frame is a laid out document: one slice of cells per screen row and the
// caret position in frame coordinates.
type Frame struct {
	Lines   [][]Cell
	CursorX int
	CursorY int
}

// Text returns the frame rows as plain strings.
func (f Frame) Text() []string {
	out := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		var sb strings.Builder
		for _, c := range line {
			sb.WriteRune(c.Rune)
		}
		out[i] = sb.String()
	}
	return out
}

// Layout lays out the document in st for a viewport width columns wide.
// Blocks start on a new row, soft newlines break rows, and long rows wrap.
// Selected characters are drawn reversed.
func Layout(st state.EditorState, styles config.StyleMap, width int) Frame {
	if width < 1 {
		width = 1
	}
	doc := st.Document()
	sel := st.Selection()
	start, end := sel.Bounds(doc)
	startIdx, endIdx := doc.IndexOf(start.Key), doc.IndexOf(end.Key)

	var f Frame
	ordinal := 0
	for i, b := range doc.Blocks() {
		if b.Type() == document.TypeOrderedListItem {
			ordinal++
		} else {
			ordinal = 0
		}

		// Selected offsets of this block: [selFrom, selTo).
		selFrom, selTo := 0, 0
		if !sel.IsCollapsed() && i >= startIdx && i <= endIdx {
			selTo = b.Len()
			if i == startIdx {
				selFrom = start.Offset
			}
			if i == endIdx {
				selTo = end.Offset
			}
		}

		caret := -1
		if b.Key() == sel.FocusKey {
			caret = sel.FocusOffset
		}
		f.layoutBlock(b, styles, width, prefix(b.Type(), ordinal), selFrom, selTo, caret)
	}
	return f
}

func (f *Frame) layoutBlock(b document.Block, styles config.StyleMap, width int, pfx string, selFrom, selTo, caret int) {
	base := StyleFor(styles.Resolve(b.Type(), nil))
	pfxRunes := []rune(pfx)
	indent := len(pfxRunes)
	if indent >= width {
		indent, pfxRunes = 0, nil
	}

	line := make([]Cell, 0, width)
	for _, r := range pfxRunes {
		line = append(line, Cell{Rune: r, Style: base.Dim(true)})
	}
	newRow := func() {
		f.Lines = append(f.Lines, line)
		line = make([]Cell, indent, width)
		for i := range line {
			line[i] = Cell{Rune: ' ', Style: tcell.StyleDefault}
		}
	}
	mark := func() {
		f.CursorX, f.CursorY = len(line), len(f.Lines)
	}

	for offset, r := range []rune(b.Text()) {
		if offset == caret {
			mark()
		}
		if r == '\n' {
			newRow()
			continue
		}
		if len(line) >= width {
			newRow()
			if offset == caret {
				mark()
			}
		}
		style := StyleFor(styles.Resolve(b.Type(), b.StylesAt(offset)))
		if offset >= selFrom && offset < selTo {
			style = style.Reverse(true)
		}
		if !isPrintable(r) {
			r = ' '
		}
		line = append(line, Cell{Rune: r, Style: style})
	}
	if caret == b.Len() {
		if len(line) >= width {
			newRow()
		}
		mark()
	}
	f.Lines = append(f.Lines, line)
}

// prefix returns the gutter drawn before the first row of a block.
func prefix(t document.BlockType, ordinal int) string {
	switch t {
	case document.TypeUnorderedListItem:
		return "• "
	case document.TypeOrderedListItem:
		return fmt.Sprintf("%d. ", ordinal)
	case document.TypeBlockquote:
		return "│ "
	case document.TypeCodeBlock:
		return "  "
	default:
		return ""
	}
}
