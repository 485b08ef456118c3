// Package selection provides anchor/focus selections over a block document.
//
// A Selection references positions by block key and character offset. It is
// an immutable value type and is only meaningful together with the Document it
// was validated against; use Force to validate a selection for a new document.
package selection

import (
	"errors"
	"fmt"

	"github.com/dshills/blockpad/internal/engine/document"
)

// Errors returned by selection validation.
var (
	ErrUnknownBlock     = errors.New("selection references unknown block")
	ErrOffsetOutOfRange = errors.New("selection offset out of range")
)

// Point is a position inside a document.
type Point struct {
	Key    string
	Offset int
}

// String returns "key:offset".
func (p Point) String() string {
	return fmt.Sprintf("%s:%d", p.Key, p.Offset)
}

// Selection represents a caret (anchor == focus) or a range of text.
// Anchor is where the selection started; Focus is where typing occurs.
type Selection struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int
	HasFocus     bool
}

// Caret creates a focused, collapsed selection at offset in block key.
func Caret(key string, offset int) Selection {
	return Selection{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
		HasFocus:     true,
	}
}

// Range creates a focused selection from anchor to focus.
func Range(anchor, focus Point) Selection {
	return Selection{
		AnchorKey:    anchor.Key,
		AnchorOffset: anchor.Offset,
		FocusKey:     focus.Key,
		FocusOffset:  focus.Offset,
		HasFocus:     true,
	}
}

// Anchor returns the anchor position.
func (s Selection) Anchor() Point {
	return Point{Key: s.AnchorKey, Offset: s.AnchorOffset}
}

// Focus returns the focus position.
func (s Selection) Focus() Point {
	return Point{Key: s.FocusKey, Offset: s.FocusOffset}
}

// IsCollapsed returns true if the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// IsZero returns true if the selection references no block.
func (s Selection) IsZero() bool {
	return s.AnchorKey == "" && s.FocusKey == ""
}

// Collapse returns a caret at the focus position.
func (s Selection) Collapse() Selection {
	c := Caret(s.FocusKey, s.FocusOffset)
	c.HasFocus = s.HasFocus
	return c
}

// WithFocus returns a copy with HasFocus set.
func (s Selection) WithFocus(focused bool) Selection {
	s.HasFocus = focused
	return s
}

// IsBackward returns true if the focus precedes the anchor in doc.
func (s Selection) IsBackward(doc *document.Document) bool {
	ai, fi := doc.IndexOf(s.AnchorKey), doc.IndexOf(s.FocusKey)
	if ai != fi {
		return fi < ai
	}
	return s.FocusOffset < s.AnchorOffset
}

// Bounds returns the start and end of the selection in document order.
func (s Selection) Bounds(doc *document.Document) (start, end Point) {
	if s.IsBackward(doc) {
		return s.Focus(), s.Anchor()
	}
	return s.Anchor(), s.Focus()
}

// Start returns the earlier position in document order.
func (s Selection) Start(doc *document.Document) Point {
	start, _ := s.Bounds(doc)
	return start
}

// End returns the later position in document order.
func (s Selection) End(doc *document.Document) Point {
	_, end := s.Bounds(doc)
	return end
}

// Validate checks that both positions reference blocks of doc and lie within
// their text.
func (s Selection) Validate(doc *document.Document) error {
	for _, p := range []Point{s.Anchor(), s.Focus()} {
		b, ok := doc.Block(p.Key)
		if !ok {
			return fmt.Errorf("%s: %w", p, ErrUnknownBlock)
		}
		if p.Offset < 0 || p.Offset > b.Len() {
			return fmt.Errorf("%s in block of length %d: %w", p, b.Len(), ErrOffsetOutOfRange)
		}
	}
	return nil
}

// Force validates spec against doc and returns it. Selections are never
// carried across document changes unchecked; callers pass the selection they
// want for the new document and Force rejects inconsistent ones.
func Force(doc *document.Document, spec Selection) (Selection, error) {
	if err := spec.Validate(doc); err != nil {
		return Selection{}, err
	}
	return spec, nil
}

// String returns a debug representation.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Caret(%s)", s.Focus())
	}
	return fmt.Sprintf("Selection(%s..%s)", s.Anchor(), s.Focus())
}
