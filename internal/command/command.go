// Package command maps key events to editing commands and applies them to an
// EditorState.
//
// The Router is the keyBindingFn / handleKeyCommand pair of the editor. A key
// event is first resolved to a Command name through the keymap registry; the
// command is then looked up in a handler table and applied. Commands that
// are not bound, or that have no handler, are reported as NotHandled so the
// caller can fall back to default character insertion.
//
// Two namespaces are resolved without explicit registration:
//
//	style.<NAME>   toggles inline style NAME ("style.STRIKETHROUGH")
//	block.<type>   toggles block type ("block.blockquote")
package command

// Command is the name of an editing command.
type Command string

// Built-in commands.
const (
	SplitBlock  Command = "split-block"
	SoftNewline Command = "soft-newline"
	Backspace   Command = "backspace"
	Delete      Command = "delete"

	Bold          Command = "bold"
	Italic        Command = "italic"
	Underline     Command = "underline"
	Code          Command = "code"
	Strikethrough Command = "strikethrough"

	HeaderOne  Command = "header-one"
	Blockquote Command = "blockquote"
	CodeBlock  Command = "code-block"

	MoveLeft          Command = "move-left"
	MoveRight         Command = "move-right"
	MoveUp            Command = "move-up"
	MoveDown          Command = "move-down"
	MoveLineStart     Command = "move-line-start"
	MoveLineEnd       Command = "move-line-end"
	MoveDocumentStart Command = "move-document-start"
	MoveDocumentEnd   Command = "move-document-end"
	SelectLeft        Command = "select-left"
	SelectRight       Command = "select-right"
	SelectUp          Command = "select-up"
	SelectDown        Command = "select-down"
	SelectAll         Command = "select-all"

	// Session commands. They need state outside the EditorState and are
	// registered by the session.
	Undo Command = "undo"
	Redo Command = "redo"
	Save Command = "save"
)

// Namespace prefixes resolved dynamically.
const (
	StyleNamespace = "style"
	BlockNamespace = "block"
)

// String returns the command name.
func (c Command) String() string {
	return string(c)
}

// Namespace returns the prefix before the first dot, or "".
func (c Command) Namespace() string {
	for i := 0; i < len(c); i++ {
		if c[i] == '.' {
			return string(c[:i])
		}
	}
	return ""
}

// Argument returns the part after the first dot, or "".
func (c Command) Argument() string {
	ns := c.Namespace()
	if ns == "" {
		return ""
	}
	return string(c[len(ns)+1:])
}

// Result is the outcome of handling a key command.
type Result uint8

const (
	// NotHandled means the command had no effect; the caller may apply its
	// default behavior.
	NotHandled Result = iota

	// Handled means the command was consumed.
	Handled
)

// String returns "handled" or "not-handled".
func (r Result) String() string {
	if r == Handled {
		return "handled"
	}
	return "not-handled"
}
