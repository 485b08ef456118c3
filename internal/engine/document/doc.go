// Package document provides the immutable block model for the blockpad engine.
//
// A Document is an ordered sequence of Blocks. Each Block carries a unique key,
// a block type, its text and a set of inline style ranges. Documents are
// values: every edit operation returns a new Document and leaves the receiver
// untouched, so callers can keep earlier documents around as undo snapshots.
//
// # Offsets
//
// All offsets are character (rune) offsets into a block's text. A style range
// covers the half-open interval [Start, End).
//
// # Basic Usage
//
//	doc := document.Empty()
//	key := doc.First().Key()
//
//	doc, _ = doc.InsertText(key, 0, "HelloWorld", nil)
//	doc, _ = doc.ApplyInlineStyle(key, 0, 5, document.StyleBold)
//
//	// Split into "Hello" and "World"; the bold range stays with "Hello".
//	doc, newKey, _ := doc.SplitBlock(key, 5)
//
// # Style Ranges
//
// Ranges are kept normalized: clipped to the block text, sorted, and with
// overlapping or touching ranges of the same style merged. Two blocks with the
// same text and the same styled characters therefore always compare equal.
//
// # Error Handling
//
//   - ErrBlockNotFound: the addressed key is not in the document
//   - ErrOffsetOutOfRange: an offset lies outside the block text
//   - ErrRangeInvalid: end < start
//   - ErrDuplicateKey: a block key is already used in the document
package document
