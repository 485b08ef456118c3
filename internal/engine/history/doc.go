// Package history provides snapshot-based undo/redo for editor states.
//
// Editor states are immutable, so undo needs no inverse operations: the
// history simply retains earlier EditorState values.
//
//	h := history.New(1000) // Max 1000 undo entries
//
//	// Record the state that is about to be replaced
//	h.Record(prev, next)
//
//	// Undo returns the previous state and remembers current for redo
//	prev, err := h.Undo(current)
//
// Consecutive character insertions are coalesced into a single undo unit so
// that one undo removes a typed run rather than a single character.
package history
