package document

import (
	"fmt"
	"slices"
)

// Edit Operations
//
// Every operation validates its arguments against the receiver and returns a
// new Document. On error the receiver is returned unchanged alongside the error.

// ReplaceTextInRange replaces [start, end) of the block with text. The
// inserted characters carry exactly the given styles.
func (d *Document) ReplaceTextInRange(key string, start, end int, text string, styles StyleSet) (*Document, error) {
	i, b, err := d.lookup(key)
	if err != nil {
		return d, err
	}
	if err := b.checkRange(start, end); err != nil {
		return d, err
	}
	return d.replaceAt(i, b.replace(start, end, []rune(text), styles)), nil
}

// InsertText inserts text at offset with the given styles.
func (d *Document) InsertText(key string, offset int, text string, styles StyleSet) (*Document, error) {
	return d.ReplaceTextInRange(key, offset, offset, text, styles)
}

// DeleteText removes [start, end) from the block.
func (d *Document) DeleteText(key string, start, end int) (*Document, error) {
	return d.ReplaceTextInRange(key, start, end, "", nil)
}

// SetBlockType sets the type of every block from startKey to endKey inclusive.
func (d *Document) SetBlockType(startKey, endKey string, typ BlockType) (*Document, error) {
	first, _, err := d.lookup(startKey)
	if err != nil {
		return d, err
	}
	last, _, err := d.lookup(endKey)
	if err != nil {
		return d, err
	}
	if last < first {
		first, last = last, first
	}

	blocks := slices.Clone(d.blocks)
	for i := first; i <= last; i++ {
		blocks[i] = blocks[i].WithType(typ)
	}
	return &Document{blocks: blocks, index: d.index}, nil
}

// SplitBlock cuts the block at offset into two blocks. The first keeps the
// original key; the second receives a freshly generated key, which is
// returned. Style ranges are divided at the split point.
func (d *Document) SplitBlock(key string, offset int) (*Document, string, error) {
	i, b, err := d.lookup(key)
	if err != nil {
		return d, "", err
	}
	if err := b.checkOffset(offset); err != nil {
		return d, "", err
	}

	newKey := d.NewKey()
	first, second := b.split(offset, newKey)

	blocks := make([]Block, 0, len(d.blocks)+1)
	blocks = append(blocks, d.blocks[:i]...)
	blocks = append(blocks, first, second)
	blocks = append(blocks, d.blocks[i+1:]...)
	return withBlocks(blocks), newKey, nil
}

// InsertBlockAfter inserts b immediately after the block with afterKey.
// A block with an empty key is given a fresh one.
func (d *Document) InsertBlockAfter(afterKey string, b Block) (*Document, error) {
	i, _, err := d.lookup(afterKey)
	if err != nil {
		return d, err
	}
	if b.key == "" {
		b.key = d.NewKey()
	} else if d.Has(b.key) {
		return d, fmt.Errorf("key %s: %w", b.key, ErrDuplicateKey)
	}

	blocks := make([]Block, 0, len(d.blocks)+1)
	blocks = append(blocks, d.blocks[:i+1]...)
	blocks = append(blocks, b)
	blocks = append(blocks, d.blocks[i+1:]...)
	return withBlocks(blocks), nil
}

// MergeWithNext joins the block following key onto the end of key's block.
// The merged block keeps key and its type. Merging the last block is a no-op.
func (d *Document) MergeWithNext(key string) (*Document, error) {
	i, b, err := d.lookup(key)
	if err != nil {
		return d, err
	}
	if i+1 >= len(d.blocks) {
		return d, nil
	}

	blocks := make([]Block, 0, len(d.blocks)-1)
	blocks = append(blocks, d.blocks[:i]...)
	blocks = append(blocks, b.join(d.blocks[i+1]))
	blocks = append(blocks, d.blocks[i+2:]...)
	return withBlocks(blocks), nil
}

// RemoveRange deletes the text between (startKey, startOffset) and
// (endKey, endOffset). The end position must not precede the start position.
// When the range spans blocks, the remainder of the end block is joined onto
// the start block and the blocks in between are removed.
func (d *Document) RemoveRange(startKey string, startOffset int, endKey string, endOffset int) (*Document, error) {
	si, sb, err := d.lookup(startKey)
	if err != nil {
		return d, err
	}
	ei, eb, err := d.lookup(endKey)
	if err != nil {
		return d, err
	}
	if err := sb.checkOffset(startOffset); err != nil {
		return d, err
	}
	if err := eb.checkOffset(endOffset); err != nil {
		return d, err
	}
	if ei < si || (ei == si && endOffset < startOffset) {
		return d, fmt.Errorf("range %s:%d..%s:%d: %w", startKey, startOffset, endKey, endOffset, ErrRangeInvalid)
	}

	if si == ei {
		return d.replaceAt(si, sb.replace(startOffset, endOffset, nil, nil)), nil
	}

	head := sb.replace(startOffset, sb.Len(), nil, nil)
	tail := eb.replace(0, endOffset, nil, nil)

	blocks := make([]Block, 0, len(d.blocks)-(ei-si))
	blocks = append(blocks, d.blocks[:si]...)
	blocks = append(blocks, head.join(tail))
	blocks = append(blocks, d.blocks[ei+1:]...)
	return withBlocks(blocks), nil
}

// ApplyInlineStyle adds style to [start, end) of the block.
func (d *Document) ApplyInlineStyle(key string, start, end int, style Style) (*Document, error) {
	return d.restyle(key, start, end, style, true)
}

// RemoveInlineStyle removes style from [start, end) of the block.
func (d *Document) RemoveInlineStyle(key string, start, end int, style Style) (*Document, error) {
	return d.restyle(key, start, end, style, false)
}

func (d *Document) restyle(key string, start, end int, style Style, add bool) (*Document, error) {
	if style == "" {
		return d, ErrEmptyStyle
	}
	i, b, err := d.lookup(key)
	if err != nil {
		return d, err
	}
	if err := b.checkRange(start, end); err != nil {
		return d, err
	}
	return d.replaceAt(i, b.restyle(start, end, style, add)), nil
}

// HasStyleOver returns true if every character of [start, end) in the block
// carries style. An empty range never has a style.
func (d *Document) HasStyleOver(key string, start, end int, style Style) bool {
	b, ok := d.Block(key)
	if !ok {
		return false
	}
	start = max(0, start)
	end = min(end, b.Len())
	return b.hasStyleOver(start, end, style)
}

// StyleAt returns the styles of the character at offset in the block.
func (d *Document) StyleAt(key string, offset int) (StyleSet, error) {
	_, b, err := d.lookup(key)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset >= b.Len() {
		return nil, fmt.Errorf("offset %d in block of length %d: %w", offset, b.Len(), ErrOffsetOutOfRange)
	}
	return b.StylesAt(offset), nil
}
