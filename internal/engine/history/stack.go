package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/blockpad/internal/engine/selection"
	"github.com/dshills/blockpad/internal/engine/state"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when New is given a non-positive limit.
const DefaultMaxEntries = 1000

// entry wraps a snapshot with metadata.
type entry struct {
	state     state.EditorState
	timestamp time.Time
}

// History manages undo/redo stacks of editor state snapshots.
type History struct {
	mu sync.Mutex

	undoStack []entry
	redoStack []entry

	// coalescing is set while a run of character insertions is open;
	// tail is the selection the last insertion of the run left behind.
	coalescing bool
	tail       selection.Selection

	maxEntries int
}

// New creates a history that keeps at most maxEntries undo snapshots.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record stores prev as an undo point for the transition prev -> next.
// Selection-only changes are not recorded, and a character insertion that
// continues at the caret the previous insertion left joins the existing undo
// unit. Clears the redo stack.
func (h *History) Record(prev, next state.EditorState) {
	if next.LastChange() == state.ChangeSelection || next.LastChange() == state.ChangeNone {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil

	inserting := next.LastChange() == state.ChangeInsertCharacters
	continues := h.coalescing && prev.Selection() == h.tail
	h.coalescing = inserting
	h.tail = next.Selection()
	if inserting && continues && len(h.undoStack) > 0 {
		return
	}

	h.pushLocked(&h.undoStack, prev)
}

// pushLocked appends a snapshot and enforces the size limit.
func (h *History) pushLocked(stack *[]entry, s state.EditorState) {
	*stack = append(*stack, entry{state: s, timestamp: time.Now()})

	if len(*stack) > h.maxEntries {
		excess := len(*stack) - h.maxEntries
		*stack = (*stack)[excess:]
	}
}

// Undo returns the most recent undo snapshot and keeps current for redo.
func (h *History) Undo(current state.EditorState) (state.EditorState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return current, ErrNothingToUndo
	}

	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.coalescing = false
	h.pushLocked(&h.redoStack, current)
	return e.state, nil
}

// Redo returns the most recently undone snapshot and keeps current for undo.
func (h *History) Redo(current state.EditorState) (state.EditorState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return current, ErrNothingToRedo
	}

	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.coalescing = false
	h.pushLocked(&h.undoStack, current)
	return e.state, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo snapshots available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo snapshots available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.coalescing = false
}
