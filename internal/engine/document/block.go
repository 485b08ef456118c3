package document

import (
	"fmt"
	"slices"
)

// Block is one paragraph-like unit of a document. Block is an immutable value
// type; the With* methods return modified copies.
type Block struct {
	key    string
	typ    BlockType
	text   []rune
	styles []StyleRange
}

// NewBlock creates a block. Ranges are clipped to the text and normalized.
// An empty key is replaced with a fresh one when the block is added to a
// Document.
func NewBlock(key string, typ BlockType, text string, ranges ...StyleRange) Block {
	if typ == "" {
		typ = TypeUnstyled
	}
	runes := []rune(text)
	return Block{
		key:    key,
		typ:    typ,
		text:   runes,
		styles: normalizeRanges(ranges, len(runes)),
	}
}

// NewEmptyBlock creates an empty unstyled block with the given key.
func NewEmptyBlock(key string) Block {
	return Block{key: key, typ: TypeUnstyled}
}

// Key returns the block's unique key.
func (b Block) Key() string {
	return b.key
}

// Type returns the block type.
func (b Block) Type() BlockType {
	return b.typ
}

// Text returns the block text.
func (b Block) Text() string {
	return string(b.text)
}

// Len returns the length of the text in characters.
func (b Block) Len() int {
	return len(b.text)
}

// IsEmpty returns true if the block has no text.
func (b Block) IsEmpty() bool {
	return len(b.text) == 0
}

// Styles returns a copy of the block's normalized style ranges.
func (b Block) Styles() []StyleRange {
	return slices.Clone(b.styles)
}

// StylesAt returns the styles applied to the character at offset.
func (b Block) StylesAt(offset int) StyleSet {
	var set StyleSet
	for _, r := range b.styles {
		if r.Contains(offset) {
			set = set.With(r.Style)
		}
	}
	return set
}

// TextRange returns the text in [start, end).
func (b Block) TextRange(start, end int) string {
	start = max(0, min(start, len(b.text)))
	end = max(start, min(end, len(b.text)))
	return string(b.text[start:end])
}

// WithKey returns a copy of the block with a different key.
func (b Block) WithKey(key string) Block {
	b.key = key
	return b
}

// WithType returns a copy of the block with a different type.
func (b Block) WithType(typ BlockType) Block {
	if typ == "" {
		typ = TypeUnstyled
	}
	b.typ = typ
	return b
}

// Equivalent returns true if both blocks have the same type, text and styles.
// Keys are not compared.
func (b Block) Equivalent(other Block) bool {
	return b.typ == other.typ &&
		slices.Equal(b.text, other.text) &&
		slices.Equal(b.styles, other.styles)
}

// String returns a debug representation.
func (b Block) String() string {
	return fmt.Sprintf("%s(%s %q %v)", b.key, b.typ, string(b.text), b.styles)
}

func (b Block) checkOffset(offset int) error {
	if offset < 0 || offset > len(b.text) {
		return fmt.Errorf("offset %d in block %s of length %d: %w", offset, b.key, len(b.text), ErrOffsetOutOfRange)
	}
	return nil
}

func (b Block) checkRange(start, end int) error {
	if end < start {
		return fmt.Errorf("range [%d:%d] in block %s: %w", start, end, b.key, ErrRangeInvalid)
	}
	if err := b.checkOffset(start); err != nil {
		return err
	}
	return b.checkOffset(end)
}

// replace swaps [start, end) for ins. Inserted characters carry exactly the
// given styles; ranges straddling the edit are cut around it.
func (b Block) replace(start, end int, ins []rune, styles StyleSet) Block {
	delta := len(ins) - (end - start)

	var ranges []StyleRange
	for _, r := range b.styles {
		if r.Start < start {
			ranges = append(ranges, StyleRange{Style: r.Style, Start: r.Start, End: min(r.End, start)})
		}
		if r.End > end {
			ranges = append(ranges, StyleRange{Style: r.Style, Start: max(r.Start, end) + delta, End: r.End + delta})
		}
	}
	if len(ins) > 0 {
		for _, s := range styles {
			ranges = append(ranges, StyleRange{Style: s, Start: start, End: start + len(ins)})
		}
	}

	text := make([]rune, 0, len(b.text)+delta)
	text = append(text, b.text[:start]...)
	text = append(text, ins...)
	text = append(text, b.text[end:]...)

	b.text = text
	b.styles = normalizeRanges(ranges, len(text))
	return b
}

// split cuts the block at offset. The first half keeps the key.
func (b Block) split(offset int, newKey string) (Block, Block) {
	first := Block{
		key:    b.key,
		typ:    b.typ,
		text:   slices.Clone(b.text[:offset]),
		styles: normalizeRanges(sliceRanges(b.styles, 0, offset), offset),
	}
	second := Block{
		key:    newKey,
		typ:    b.typ,
		text:   slices.Clone(b.text[offset:]),
		styles: normalizeRanges(sliceRanges(b.styles, offset, len(b.text)), len(b.text)-offset),
	}
	return first, second
}

// join appends next's text and styles to b. b keeps its key and type.
func (b Block) join(next Block) Block {
	text := make([]rune, 0, len(b.text)+len(next.text))
	text = append(text, b.text...)
	text = append(text, next.text...)

	ranges := append(slices.Clone(b.styles), shiftRanges(next.styles, len(b.text))...)

	b.text = text
	b.styles = normalizeRanges(ranges, len(text))
	return b
}

// restyle adds or removes style over [start, end).
func (b Block) restyle(start, end int, style Style, add bool) Block {
	var ranges []StyleRange
	for _, r := range b.styles {
		if r.Style != style || add {
			ranges = append(ranges, r)
			continue
		}
		if r.Start < start {
			ranges = append(ranges, StyleRange{Style: style, Start: r.Start, End: min(r.End, start)})
		}
		if r.End > end {
			ranges = append(ranges, StyleRange{Style: style, Start: max(r.Start, end), End: r.End})
		}
	}
	if add {
		ranges = append(ranges, StyleRange{Style: style, Start: start, End: end})
	}
	b.styles = normalizeRanges(ranges, len(b.text))
	return b
}

// hasStyleOver returns true if every character in [start, end) carries style.
func (b Block) hasStyleOver(start, end int, style Style) bool {
	if end <= start {
		return false
	}
	for i := start; i < end; i++ {
		if !b.StylesAt(i).Has(style) {
			return false
		}
	}
	return true
}
