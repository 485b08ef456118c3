package document

import (
	"fmt"
	"slices"
	"strings"
)

// Document is an immutable ordered sequence of blocks with unique keys.
// A Document always holds at least one block.
type Document struct {
	blocks []Block
	index  map[string]int
}

// New creates a document from blocks. Blocks without a key get a fresh one.
// An empty block list yields a document with one empty block.
func New(blocks ...Block) (*Document, error) {
	if len(blocks) == 0 {
		return Empty(), nil
	}

	d := &Document{
		blocks: make([]Block, 0, len(blocks)),
		index:  make(map[string]int, len(blocks)),
	}
	for _, b := range blocks {
		if b.key != "" {
			if _, dup := d.index[b.key]; dup {
				return nil, fmt.Errorf("key %s: %w", b.key, ErrDuplicateKey)
			}
		}
		d.index[b.key] = len(d.blocks)
		d.blocks = append(d.blocks, b)
	}
	delete(d.index, "")

	for i := range d.blocks {
		if d.blocks[i].key == "" {
			key := d.NewKey()
			d.blocks[i].key = key
			d.index[key] = i
		}
	}
	return d, nil
}

// MustNew is like New but panics on error. Intended for tests and fixed content.
func MustNew(blocks ...Block) *Document {
	d, err := New(blocks...)
	if err != nil {
		panic(fmt.Sprintf("document: %v", err))
	}
	return d
}

// Empty returns a document with a single empty unstyled block.
func Empty() *Document {
	key := GenerateKey(nil)
	return &Document{
		blocks: []Block{NewEmptyBlock(key)},
		index:  map[string]int{key: 0},
	}
}

// withBlocks builds a document from an already validated block slice.
func withBlocks(blocks []Block) *Document {
	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		index[b.key] = i
	}
	return &Document{blocks: blocks, index: index}
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Blocks returns the blocks in order. The slice is a copy.
func (d *Document) Blocks() []Block {
	return slices.Clone(d.blocks)
}

// Keys returns the block keys in order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		keys[i] = b.key
	}
	return keys
}

// Block returns the block with the given key.
func (d *Document) Block(key string) (Block, bool) {
	i, ok := d.index[key]
	if !ok {
		return Block{}, false
	}
	return d.blocks[i], true
}

// Has returns true if the document contains a block with key.
func (d *Document) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// IndexOf returns the position of the block with key, or -1.
func (d *Document) IndexOf(key string) int {
	if i, ok := d.index[key]; ok {
		return i
	}
	return -1
}

// At returns the block at position i.
func (d *Document) At(i int) Block {
	return d.blocks[i]
}

// First returns the first block.
func (d *Document) First() Block {
	return d.blocks[0]
}

// Last returns the last block.
func (d *Document) Last() Block {
	return d.blocks[len(d.blocks)-1]
}

// BlockAfter returns the block following key.
func (d *Document) BlockAfter(key string) (Block, bool) {
	i, ok := d.index[key]
	if !ok || i+1 >= len(d.blocks) {
		return Block{}, false
	}
	return d.blocks[i+1], true
}

// BlockBefore returns the block preceding key.
func (d *Document) BlockBefore(key string) (Block, bool) {
	i, ok := d.index[key]
	if !ok || i == 0 {
		return Block{}, false
	}
	return d.blocks[i-1], true
}

// NewKey returns a key that is not used in the document.
func (d *Document) NewKey() string {
	return GenerateKey(d.Has)
}

// PlainText returns the text of all blocks joined by newlines.
func (d *Document) PlainText() string {
	parts := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		parts[i] = string(b.text)
	}
	return strings.Join(parts, "\n")
}

// Equivalent returns true if both documents hold the same blocks in the same
// order, ignoring block keys.
func Equivalent(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.blocks) != len(b.blocks) {
		return false
	}
	for i := range a.blocks {
		if !a.blocks[i].Equivalent(b.blocks[i]) {
			return false
		}
	}
	return true
}

func (d *Document) lookup(key string) (int, Block, error) {
	i, ok := d.index[key]
	if !ok {
		return -1, Block{}, fmt.Errorf("key %q: %w", key, ErrBlockNotFound)
	}
	return i, d.blocks[i], nil
}

// replaceAt returns a document with the block at i swapped for b.
func (d *Document) replaceAt(i int, b Block) *Document {
	blocks := slices.Clone(d.blocks)
	blocks[i] = b
	return &Document{blocks: blocks, index: d.index}
}
