package command

import (
	"errors"
	"testing"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/selection"
	"github.com/dshills/blockpad/internal/engine/state"
	"github.com/dshills/blockpad/internal/input/key"
	"github.com/dshills/blockpad/internal/input/keymap"
)

func caretAt(t *testing.T, blockKey string, offset int, blocks ...document.Block) state.EditorState {
	t.Helper()
	s, err := state.CreateWithContent(document.MustNew(blocks...)).ForceSelection(selection.Caret(blockKey, offset))
	if err != nil {
		t.Fatalf("ForceSelection failed: %v", err)
	}
	return s
}

func TestKeyBindingFn(t *testing.T) {
	r := NewRouter(nil)

	tests := []struct {
		spec   string
		want   Command
		wantOK bool
	}{
		{"Enter", SplitBlock, true},
		{"Shift+Enter", SoftNewline, true},
		{"Ctrl+B", Bold, true},
		{"Ctrl+I", Italic, true},
		{"Ctrl+U", Underline, true},
		{"Ctrl+J", Code, true},
		{"Backspace", Backspace, true},
		{"Delete", Delete, true},
		{"Ctrl+Z", Undo, true},
		{"Ctrl+Y", Redo, true},
		{"Ctrl+S", Save, true},
		{"a", "", false},
		{"Space", "", false},
		{"Ctrl+Q", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, ok := r.KeyBindingFn(key.MustParse(tt.spec))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("KeyBindingFn(%s) = (%q, %v), want (%q, %v)", tt.spec, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHandleKeyCommandSplitBlock(t *testing.T) {
	r := NewRouter(nil)
	s := caretAt(t, "a", 5, document.NewBlock("a", document.TypeUnstyled, "Hello"))

	got, res, err := r.HandleKeyCommand(s, SplitBlock)
	if err != nil {
		t.Fatalf("HandleKeyCommand failed: %v", err)
	}
	if res != Handled {
		t.Fatalf("expected handled, got %s", res)
	}
	if got.Document().Len() != 2 {
		t.Errorf("expected 2 blocks, got %d", got.Document().Len())
	}
}

func TestHandleKeyCommandBold(t *testing.T) {
	r := NewRouter(nil)
	s := caretAt(t, "a", 0, document.NewEmptyBlock("a"))

	got, res, err := r.HandleKeyCommand(s, Bold)
	if err != nil || res != Handled {
		t.Fatalf("expected handled, got %s err=%v", res, err)
	}
	if !got.CurrentInlineStyle().Has(document.StyleBold) {
		t.Error("expected BOLD to be active")
	}
}

func TestHandleKeyCommandNotHandled(t *testing.T) {
	r := NewRouter(nil)
	s := caretAt(t, "a", 0, document.NewBlock("a", document.TypeUnstyled, "x"))

	got, res, err := r.HandleKeyCommand(s, Backspace)
	if err != nil {
		t.Fatalf("no-effect commands should not error: %v", err)
	}
	if res != NotHandled {
		t.Errorf("expected not-handled, got %s", res)
	}
	if got.Document() != s.Document() {
		t.Error("state should be unchanged")
	}

	if _, res, err := r.HandleKeyCommand(s, "frobnicate"); res != NotHandled || !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected not-handled unknown command, got %s err=%v", res, err)
	}

	// Session commands are unknown until registered.
	if _, res, _ := r.HandleKeyCommand(s, Undo); res != NotHandled {
		t.Errorf("expected undo to be not-handled without a session, got %s", res)
	}
}

func TestNamespacedCommands(t *testing.T) {
	r := NewRouter(nil)
	s := caretAt(t, "a", 0, document.NewBlock("a", document.TypeUnstyled, "quote"))

	got, res, err := r.HandleKeyCommand(s, "block.blockquote")
	if err != nil || res != Handled {
		t.Fatalf("expected handled, got %s err=%v", res, err)
	}
	if got.Document().First().Type() != document.TypeBlockquote {
		t.Errorf("expected blockquote, got %s", got.Document().First().Type())
	}

	got, res, err = r.HandleKeyCommand(got, "style.color-red")
	if err != nil || res != Handled {
		t.Fatalf("expected handled, got %s err=%v", res, err)
	}
	if !got.CurrentInlineStyle().Has(document.StyleColorRed) {
		t.Error("expected color-red to be active")
	}

	if _, ok := r.Route("style."); ok {
		t.Error("empty namespace argument should not route")
	}
}

func TestRegisterOverrides(t *testing.T) {
	reg := keymap.NewRegistry()
	_ = reg.Register(keymap.NewKeymap("test").Add("Ctrl+K", "shout"))
	r := NewRouter(reg)

	called := false
	r.Register("shout", func(s state.EditorState) (state.EditorState, error) {
		called = true
		return s, nil
	})

	cmd, ok := r.KeyBindingFn(key.MustParse("Ctrl+K"))
	if !ok {
		t.Fatal("expected binding")
	}
	if _, res, err := r.HandleKeyCommand(state.NewEmpty(), cmd); err != nil || res != Handled {
		t.Fatalf("expected handled, got %s err=%v", res, err)
	}
	if !called {
		t.Error("custom handler not called")
	}

	r.Unregister("shout")
	if _, ok := r.Route("shout"); ok {
		t.Error("expected handler to be removed")
	}
}

func TestCommandNamespace(t *testing.T) {
	tests := []struct {
		cmd     Command
		ns, arg string
	}{
		{"style.BOLD", "style", "BOLD"},
		{"block.header-two", "block", "header-two"},
		{"bold", "", ""},
	}
	for _, tt := range tests {
		if tt.cmd.Namespace() != tt.ns || tt.cmd.Argument() != tt.arg {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", tt.cmd, tt.cmd.Namespace(), tt.cmd.Argument(), tt.ns, tt.arg)
		}
	}
	if Handled.String() != "handled" || NotHandled.String() != "not-handled" {
		t.Error("unexpected result names")
	}
}
