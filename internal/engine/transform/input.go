package transform

import (
	"github.com/dshills/blockpad/internal/engine/selection"
	"github.com/dshills/blockpad/internal/engine/state"
	"github.com/dshills/blockpad/internal/trigger"
)

// HandleBeforeInput evaluates rules against the active block text followed
// by ch. It reports handled when a rule matched and was applied; ch is then
// consumed. Without a match the state is returned unchanged and the caller
// inserts ch normally.
func HandleBeforeInput(s state.EditorState, rules trigger.Rules, ch string) (state.EditorState, bool, error) {
	b, err := activeBlock(s)
	if err != nil {
		return s, false, err
	}
	m, ok := rules.Match(b.Text() + ch)
	if !ok {
		return s, false, nil
	}
	next, err := ApplyTrigger(s, m)
	if err != nil {
		return s, false, err
	}
	return next, true, nil
}

// ApplyTrigger applies a trigger match to the active block. The part of the
// matched text that lies in the block is erased, the rule's block type is set,
// and the rule's inline style is turned on for the next insertion. The caret
// ends at offset 0 of the same block.
func ApplyTrigger(s state.EditorState, m trigger.Match) (state.EditorState, error) {
	b, err := activeBlock(s)
	if err != nil {
		return s, err
	}
	key := b.Key()

	doc, err := s.Document().DeleteText(key, 0, min(m.End, b.Len()))
	if err != nil {
		return s, err
	}

	change := state.ChangeReplaceText
	if m.Rule.BlockType != "" {
		doc, err = doc.SetBlockType(key, key, m.Rule.BlockType)
		if err != nil {
			return s, err
		}
		change = state.ChangeBlockType
	}

	next, err := s.Push(doc, selection.Caret(key, 0), change)
	if err != nil {
		return s, err
	}
	if m.Rule.InlineStyle != "" {
		next = next.WithInlineStyleOverride(next.CurrentInlineStyle().With(m.Rule.InlineStyle))
	}
	return next, nil
}
