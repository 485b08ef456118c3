package keymap

// Default returns the built-in bindings.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// Block structure
			{Keys: "Enter", Command: "split-block", Description: "Split block or start a new one", Category: "Blocks"},
			{Keys: "Shift+Enter", Command: "soft-newline", Description: "Insert a line break", Category: "Blocks"},
			{Keys: "Ctrl+Alt+1", Command: "header-one", Description: "Toggle heading", Category: "Blocks"},
			{Keys: "Ctrl+Alt+q", Command: "blockquote", Description: "Toggle quote", Category: "Blocks"},
			{Keys: "Ctrl+Alt+c", Command: "code-block", Description: "Toggle code block", Category: "Blocks"},

			// Inline styles
			{Keys: "Ctrl+B", Command: "bold", Description: "Toggle bold", Category: "Styles"},
			{Keys: "Ctrl+I", Command: "italic", Description: "Toggle italic", Category: "Styles"},
			{Keys: "Ctrl+U", Command: "underline", Description: "Toggle underline", Category: "Styles"},
			{Keys: "Ctrl+J", Command: "code", Description: "Toggle inline code", Category: "Styles"},

			// Deletion
			{Keys: "Backspace", Command: "backspace", Description: "Delete backward", Category: "Editing"},
			{Keys: "Delete", Command: "delete", Description: "Delete forward", Category: "Editing"},

			// History
			{Keys: "Ctrl+Z", Command: "undo", Description: "Undo", Category: "History"},
			{Keys: "Ctrl+Y", Command: "redo", Description: "Redo", Category: "History"},
			{Keys: "Ctrl+Shift+Z", Command: "redo", Description: "Redo", Category: "History"},

			// Persistence
			{Keys: "Ctrl+S", Command: "save", Description: "Save document", Category: "File"},

			// Movement
			{Keys: "Left", Command: "move-left", Description: "Move left", Category: "Movement"},
			{Keys: "Right", Command: "move-right", Description: "Move right", Category: "Movement"},
			{Keys: "Up", Command: "move-up", Description: "Move up", Category: "Movement"},
			{Keys: "Down", Command: "move-down", Description: "Move down", Category: "Movement"},
			{Keys: "Home", Command: "move-line-start", Description: "Move to line start", Category: "Movement"},
			{Keys: "End", Command: "move-line-end", Description: "Move to line end", Category: "Movement"},
			{Keys: "Ctrl+Home", Command: "move-document-start", Description: "Move to document start", Category: "Movement"},
			{Keys: "Ctrl+End", Command: "move-document-end", Description: "Move to document end", Category: "Movement"},
			{Keys: "Shift+Left", Command: "select-left", Description: "Extend selection left", Category: "Selection"},
			{Keys: "Shift+Right", Command: "select-right", Description: "Extend selection right", Category: "Selection"},
			{Keys: "Shift+Up", Command: "select-up", Description: "Extend selection up", Category: "Selection"},
			{Keys: "Shift+Down", Command: "select-down", Description: "Extend selection down", Category: "Selection"},
			{Keys: "Ctrl+A", Command: "select-all", Description: "Select all", Category: "Selection"},
		},
	}
}
