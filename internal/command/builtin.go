package command

import (
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/state"
	"github.com/dshills/blockpad/internal/engine/transform"
)

func (r *Router) registerBuiltins() {
	r.handlers[SplitBlock] = transform.SplitBlock
	r.handlers[SoftNewline] = transform.InsertSoftNewline
	r.handlers[Backspace] = transform.Backspace
	r.handlers[Delete] = transform.Delete

	r.handlers[Bold] = toggleStyle(document.StyleBold)
	r.handlers[Italic] = toggleStyle(document.StyleItalic)
	r.handlers[Underline] = toggleStyle(document.StyleUnderline)
	r.handlers[Code] = toggleStyle(document.StyleCode)
	r.handlers[Strikethrough] = toggleStyle(document.StyleStrikethrough)

	r.handlers[HeaderOne] = toggleBlock(document.TypeHeaderOne)
	r.handlers[Blockquote] = toggleBlock(document.TypeBlockquote)
	r.handlers[CodeBlock] = toggleBlock(document.TypeCodeBlock)

	r.handlers[MoveLeft] = move(transform.Left)
	r.handlers[MoveRight] = move(transform.Right)
	r.handlers[MoveUp] = move(transform.Up)
	r.handlers[MoveDown] = move(transform.Down)
	r.handlers[MoveLineStart] = move(transform.LineStart)
	r.handlers[MoveLineEnd] = move(transform.LineEnd)
	r.handlers[MoveDocumentStart] = move(transform.DocumentStart)
	r.handlers[MoveDocumentEnd] = move(transform.DocumentEnd)
	r.handlers[SelectLeft] = extend(transform.Left)
	r.handlers[SelectRight] = extend(transform.Right)
	r.handlers[SelectUp] = extend(transform.Up)
	r.handlers[SelectDown] = extend(transform.Down)
	r.handlers[SelectAll] = transform.SelectAll
}

func toggleStyle(style document.Style) Handler {
	return func(s state.EditorState) (state.EditorState, error) {
		return transform.ToggleInlineStyle(s, style)
	}
}

func toggleBlock(typ document.BlockType) Handler {
	return func(s state.EditorState) (state.EditorState, error) {
		return transform.ToggleBlockType(s, typ)
	}
}

func move(dir transform.Direction) Handler {
	return func(s state.EditorState) (state.EditorState, error) {
		return transform.Move(s, dir)
	}
}

func extend(dir transform.Direction) Handler {
	return func(s state.EditorState) (state.EditorState, error) {
		return transform.Extend(s, dir)
	}
}
