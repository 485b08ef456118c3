package history

import (
	"errors"
	"testing"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/selection"
	"github.com/dshills/blockpad/internal/engine/state"
)

// edit returns a state derived from s whose single block holds text.
func edit(t *testing.T, s state.EditorState, text string, change state.ChangeType) state.EditorState {
	t.Helper()
	key := s.Document().First().Key()
	doc, err := s.Document().ReplaceTextInRange(key, 0, s.Document().First().Len(), text, nil)
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	next, err := s.Push(doc, selection.Caret(key, len([]rune(text))), change)
	if err != nil {
		t.Fatalf("push failed: %v", err)
	}
	return next
}

func text(s state.EditorState) string {
	return s.Document().PlainText()
}

func TestUndoRedo(t *testing.T) {
	h := New(10)
	s0 := state.NewEmpty()
	s1 := edit(t, s0, "Hello", state.ChangeReplaceText)
	h.Record(s0, s1)
	s2 := edit(t, s1, "Hello World", state.ChangeReplaceText)
	h.Record(s1, s2)

	if h.UndoCount() != 2 {
		t.Fatalf("expected 2 undo entries, got %d", h.UndoCount())
	}

	got, err := h.Undo(s2)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if text(got) != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", text(got))
	}

	got, err = h.Undo(got)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if text(got) != "" {
		t.Errorf("expected empty text, got %q", text(got))
	}

	if _, err := h.Undo(got); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}

	got, err = h.Redo(got)
	if err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if text(got) != "Hello" {
		t.Errorf("expected %q after redo, got %q", "Hello", text(got))
	}
	if !h.CanRedo() {
		t.Error("expected one more redo")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	h := New(10)
	s0 := state.NewEmpty()
	s1 := edit(t, s0, "a", state.ChangeReplaceText)
	h.Record(s0, s1)

	undone, _ := h.Undo(s1)
	s2 := edit(t, undone, "b", state.ChangeReplaceText)
	h.Record(undone, s2)

	if h.CanRedo() {
		t.Error("new edit should clear the redo stack")
	}
	if _, err := h.Redo(s2); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestInsertionsCoalesce(t *testing.T) {
	h := New(10)
	s := state.NewEmpty()
	for _, typed := range []string{"H", "He", "Hel"} {
		next := edit(t, s, typed, state.ChangeInsertCharacters)
		h.Record(s, next)
		s = next
	}

	if h.UndoCount() != 1 {
		t.Fatalf("expected insertions to coalesce into 1 entry, got %d", h.UndoCount())
	}

	got, _ := h.Undo(s)
	if text(got) != "" {
		t.Errorf("expected undo to remove the typed run, got %q", text(got))
	}

	// Typing after an undo starts a new unit.
	next := edit(t, got, "x", state.ChangeInsertCharacters)
	h.Record(got, next)
	if h.UndoCount() != 1 {
		t.Errorf("expected a fresh undo entry after undo, got %d", h.UndoCount())
	}
}

func TestCaretMoveEndsInsertionRun(t *testing.T) {
	h := New(10)
	s0 := state.NewEmpty()
	s1 := edit(t, s0, "ab", state.ChangeInsertCharacters)
	h.Record(s0, s1)

	moved, err := s1.ForceSelection(selection.Caret(s1.Document().First().Key(), 0))
	if err != nil {
		t.Fatalf("force selection failed: %v", err)
	}
	h.Record(s1, moved)

	s2 := edit(t, moved, "xab", state.ChangeInsertCharacters)
	h.Record(moved, s2)

	if h.UndoCount() != 2 {
		t.Fatalf("expected typing after a caret move to start a new entry, got %d", h.UndoCount())
	}
	got, err := h.Undo(s2)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if text(got) != "ab" {
		t.Errorf("expected %q, got %q", "ab", text(got))
	}
}

func TestSelectionChangesNotRecorded(t *testing.T) {
	h := New(10)
	s0 := state.CreateWithContent(document.MustNew(document.NewBlock("k", document.TypeUnstyled, "abc")))
	s1, err := s0.ForceSelection(selection.Caret("k", 2))
	if err != nil {
		t.Fatalf("force selection failed: %v", err)
	}
	h.Record(s0, s1)

	if h.CanUndo() {
		t.Error("selection-only change should not be recorded")
	}
}

func TestMaxEntries(t *testing.T) {
	h := New(3)
	s := state.NewEmpty()
	for _, typed := range []string{"a", "b", "c", "d", "e"} {
		next := edit(t, s, typed, state.ChangeReplaceText)
		h.Record(s, next)
		s = next
	}

	if h.UndoCount() != 3 {
		t.Errorf("expected 3 entries, got %d", h.UndoCount())
	}

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("expected empty history after Clear")
	}
}
