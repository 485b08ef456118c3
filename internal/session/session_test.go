package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/blockpad/internal/command"
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/state"
	"github.com/dshills/blockpad/internal/input/key"
	"github.com/dshills/blockpad/internal/logging"
	"github.com/dshills/blockpad/internal/serialize"
	"github.com/dshills/blockpad/internal/store"
)

func typeText(t *testing.T, s *Session, text string) {
	t.Helper()
	for _, r := range text {
		if res := s.HandleKey(key.NewRuneEvent(r, key.ModNone)); res != command.Handled {
			t.Fatalf("HandleKey(%q) = %v, want handled", r, res)
		}
	}
}

func press(t *testing.T, s *Session, spec string) command.Result {
	t.Helper()
	return s.HandleKey(key.MustParse(spec))
}

func texts(s *Session) []string {
	var out []string
	for _, b := range s.State().Document().Blocks() {
		out = append(out, b.Text())
	}
	return out
}

func types(s *Session) []document.BlockType {
	var out []document.BlockType
	for _, b := range s.State().Document().Blocks() {
		out = append(out, b.Type())
	}
	return out
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := New(Options{})
	doc := s.State().Document()
	if doc.Len() != 1 || doc.First().Text() != "" || doc.First().Type() != document.TypeUnstyled {
		t.Errorf("new session document = %v, want one empty unstyled block", doc.Blocks())
	}
	if s.Key() != DefaultKey {
		t.Errorf("Key() = %q, want %q", s.Key(), DefaultKey)
	}
}

func TestTypingAndEnter(t *testing.T) {
	s := New(Options{})
	typeText(t, s, "Hello")
	if res := press(t, s, "Enter"); res != command.Handled {
		t.Fatalf("Enter = %v", res)
	}
	typeText(t, s, "World")

	if diff := cmp.Diff([]string{"Hello", "World"}, texts(s)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	sel := s.State().Selection()
	if sel.FocusKey != s.State().Document().Last().Key() || sel.FocusOffset != 5 {
		t.Errorf("selection = %v, want end of second block", sel)
	}
}

func TestSoftNewline(t *testing.T) {
	s := New(Options{})
	typeText(t, s, "ab")
	press(t, s, "Shift+Enter")
	typeText(t, s, "cd")

	if diff := cmp.Diff([]string{"ab\ncd"}, texts(s)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestTriggers(t *testing.T) {
	tests := []struct {
		name      string
		typed     string
		wantText  string
		wantType  document.BlockType
		wantStyle document.Style
	}{
		{"header", "# Title", "Title", document.TypeHeaderOne, ""},
		{"bold", "* ab", "ab", document.TypeUnstyled, document.StyleBold},
		{"red", "** ab", "ab", document.TypeUnstyled, document.StyleColorRed},
		{"underline", "*** ab", "ab", document.TypeUnstyled, document.StyleUnderline},
		{"code block", "``` x", "x", document.TypeCodeBlock, ""},
		{"no trigger mid text", "a# b", "a# b", document.TypeUnstyled, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{})
			typeText(t, s, tt.typed)

			b := s.State().Document().First()
			if b.Text() != tt.wantText {
				t.Errorf("text = %q, want %q", b.Text(), tt.wantText)
			}
			if b.Type() != tt.wantType {
				t.Errorf("type = %q, want %q", b.Type(), tt.wantType)
			}
			if tt.wantStyle != "" {
				want := []document.StyleRange{{Style: tt.wantStyle, Start: 0, End: len([]rune(tt.wantText))}}
				if diff := cmp.Diff(want, b.Styles()); diff != "" {
					t.Errorf("styles mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestHandleBeforeInputDirect(t *testing.T) {
	s := New(Options{})
	s.InsertText("#")
	if res := s.HandleBeforeInput(" "); res != command.Handled {
		t.Fatalf("HandleBeforeInput = %v, want handled", res)
	}
	if res := s.HandleBeforeInput("x"); res != command.NotHandled {
		t.Errorf("HandleBeforeInput(x) = %v, want not-handled", res)
	}
	if diff := cmp.Diff([]document.BlockType{document.TypeHeaderOne}, types(s)); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoRedo(t *testing.T) {
	s := New(Options{})
	typeText(t, s, "Hello")
	press(t, s, "Enter")

	if !s.CanUndo() {
		t.Fatal("CanUndo() = false after edits")
	}
	if res := press(t, s, "Ctrl+Z"); res != command.Handled {
		t.Fatalf("undo = %v", res)
	}
	if diff := cmp.Diff([]string{"Hello"}, texts(s)); diff != "" {
		t.Errorf("after first undo (-want +got):\n%s", diff)
	}

	// Consecutive insertions form one undo unit.
	s.Undo()
	if diff := cmp.Diff([]string{""}, texts(s)); diff != "" {
		t.Errorf("after second undo (-want +got):\n%s", diff)
	}
	if res := s.Undo(); res != command.NotHandled {
		t.Errorf("undo with empty history = %v, want not-handled", res)
	}

	if res := press(t, s, "Ctrl+Y"); res != command.Handled {
		t.Fatalf("redo = %v", res)
	}
	if diff := cmp.Diff([]string{"Hello"}, texts(s)); diff != "" {
		t.Errorf("after redo (-want +got):\n%s", diff)
	}
	s.Redo()
	if diff := cmp.Diff([]string{"Hello", ""}, texts(s)); diff != "" {
		t.Errorf("after second redo (-want +got):\n%s", diff)
	}
	if s.CanRedo() {
		t.Error("CanRedo() = true with redo stack drained")
	}
}

func TestNotHandled(t *testing.T) {
	var buf bytes.Buffer
	s := New(Options{Logger: logging.New("debug", "text", &buf)})

	if res := press(t, s, "Backspace"); res != command.NotHandled {
		t.Errorf("Backspace at start = %v, want not-handled", res)
	}
	if res := s.HandleKeyCommand("no-such-command"); res != command.NotHandled {
		t.Errorf("unknown command = %v, want not-handled", res)
	}
	if res := press(t, s, "Ctrl+Q"); res != command.NotHandled {
		t.Errorf("unbound chord = %v, want not-handled", res)
	}
	if s.CanUndo() {
		t.Error("not-handled events were recorded in history")
	}
	if !strings.Contains(buf.String(), "unknown command") {
		t.Errorf("unknown command not logged:\n%s", buf.String())
	}
}

func TestStyleToggleThenType(t *testing.T) {
	s := New(Options{})
	press(t, s, "Ctrl+B")
	typeText(t, s, "ab")
	press(t, s, "Ctrl+B")
	typeText(t, s, "c")

	want := []document.StyleRange{{Style: document.StyleBold, Start: 0, End: 2}}
	if diff := cmp.Diff(want, s.State().Document().First().Styles()); diff != "" {
		t.Errorf("styles mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	s := New(Options{Store: st, Key: "doc"})
	typeText(t, s, "# Title")
	press(t, s, "Enter")
	typeText(t, s, "* body")

	data, err := s.Save(ctx)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	stored, err := st.Get(ctx, "doc")
	if err != nil {
		t.Fatalf("store Get() error = %v", err)
	}
	if !bytes.Equal(data, stored) {
		t.Error("Save() returned payload differs from stored payload")
	}

	other := New(Options{Store: st, Key: "doc"})
	loaded, err := other.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !document.Equivalent(s.State().Document(), loaded.Document()) {
		t.Errorf("loaded document differs:\n got %v\nwant %v", loaded.Document().Blocks(), s.State().Document().Blocks())
	}
	sel := loaded.Selection()
	if sel.FocusKey != loaded.Document().First().Key() || sel.FocusOffset != 0 {
		t.Errorf("loaded selection = %v, want caret at start", sel)
	}
	if other.CanUndo() {
		t.Error("Load left undo history")
	}
}

func TestSaveKeyCommand(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	s := New(Options{Store: st})
	typeText(t, s, "hi")

	if res := press(t, s, "Ctrl+S"); res != command.Handled {
		t.Fatalf("Ctrl+S = %v, want handled", res)
	}
	data, err := st.Get(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("store Get() error = %v", err)
	}
	doc, err := serialize.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if doc.First().Text() != "hi" {
		t.Errorf("saved text = %q, want hi", doc.First().Text())
	}

	// Saving is not an undo step.
	s.Undo()
	if diff := cmp.Diff([]string{""}, texts(s)); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	s := New(Options{Store: store.NewMemory()})
	typeText(t, s, "scratch")

	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]string{""}, texts(s)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	if st.Document().First().Type() != document.TypeUnstyled {
		t.Errorf("type = %q, want unstyled", st.Document().First().Type())
	}
}

func TestLoadMalformed(t *testing.T) {
	payloads := map[string]string{
		"not json":       "{",
		"no blocks":      `{"version":1,"blocks":[]}`,
		"bad range":      `{"version":1,"blocks":[{"text":"ab","type":"unstyled","inlineStyleRanges":[{"offset":1,"length":5,"style":"BOLD"}]}]}`,
		"empty style":    `{"version":1,"blocks":[{"text":"ab","type":"unstyled","inlineStyleRanges":[{"offset":0,"length":1,"style":""}]}]}`,
		"newer format":   `{"version":99,"blocks":[{"text":"ab","type":"unstyled","inlineStyleRanges":[]}]}`,
		"newer legacy":   `{"version":7,"entityMap":{},"blocks":[{"key":"x","text":"hi","type":"unstyled","inlineStyleRanges":[]}]}`,
		"range overflow": `{"version":1,"blocks":[{"text":"hi","type":"unstyled","inlineStyleRanges":[{"offset":9223372036854775807,"length":1,"style":"BOLD"}]}]}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := store.NewMemory()
			if err := st.Put(ctx, DefaultKey, []byte(payload)); err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			s := New(Options{Store: st, Logger: logging.New("info", "text", &buf)})
			if _, err := s.Load(ctx); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff([]string{""}, texts(s)); diff != "" {
				t.Errorf("texts mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(buf.String(), "discarding malformed document") {
				t.Errorf("malformed payload not logged:\n%s", buf.String())
			}
		})
	}
}

func TestLoadLegacy(t *testing.T) {
	payload := `{"blocks":[` +
		`{"key":"4k2j1","text":"Title","type":"header-one","depth":0,"inlineStyleRanges":[],"entityRanges":[],"data":{}},` +
		`{"key":"9a8b7","text":"bold","type":"unstyled","depth":0,"inlineStyleRanges":[{"offset":0,"length":4,"style":"BOLD"}],"entityRanges":[],"data":{}}` +
		`],"entityMap":{}}`

	s := New(Options{})
	st := s.LoadBytes([]byte(payload))

	if diff := cmp.Diff([]string{"Title", "bold"}, texts(s)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]document.BlockType{document.TypeHeaderOne, document.TypeUnstyled}, types(s)); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
	for _, k := range st.Document().Keys() {
		if k == "4k2j1" || k == "9a8b7" {
			t.Errorf("stored key %q was reused", k)
		}
	}

	newer := `{"version":7,"entityMap":{},"blocks":[{"key":"x","text":"hi","type":"unstyled","inlineStyleRanges":[]}]}`
	s.LoadBytes([]byte(newer))
	if diff := cmp.Diff([]string{""}, texts(s)); diff != "" {
		t.Errorf("legacy payload from a newer version was accepted (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	s := New(Options{Store: st})
	typeText(t, s, "gone")
	if _, err := s.Save(ctx); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := st.Get(ctx, DefaultKey); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("store Get() after Clear error = %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff([]string{""}, texts(s)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestNoStore(t *testing.T) {
	ctx := context.Background()
	s := New(Options{})

	if _, err := s.Save(ctx); !errors.Is(err, ErrNoStore) {
		t.Errorf("Save() error = %v, want ErrNoStore", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNoStore) {
		t.Errorf("Load() error = %v, want ErrNoStore", err)
	}
	if err := s.Clear(ctx); !errors.Is(err, ErrNoStore) {
		t.Errorf("Clear() error = %v, want ErrNoStore", err)
	}
	if res := press(t, s, "Ctrl+S"); res != command.NotHandled {
		t.Errorf("Ctrl+S without store = %v, want not-handled", res)
	}
}

func TestOnChange(t *testing.T) {
	var calls int
	s := New(Options{OnChange: func(state.EditorState) { calls++ }})
	typeText(t, s, "ab")
	press(t, s, "Left")
	press(t, s, "Backspace")
	if calls != 4 {
		t.Errorf("OnChange calls = %d, want 4", calls)
	}
}

func TestConcurrentInput(t *testing.T) {
	s := New(Options{})

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				s.HandleKey(key.NewRuneEvent('x', key.ModNone))
				_ = s.State().Document().First().Text()
			}
		}()
	}
	wg.Wait()

	if got := s.State().Document().First().Len(); got != workers*perWorker {
		t.Errorf("text length = %d, want %d", got, workers*perWorker)
	}
}
