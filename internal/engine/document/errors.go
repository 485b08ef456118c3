package document

import "errors"

// Errors returned by document operations.
var (
	// ErrBlockNotFound indicates an operation addressed a key that is not in the document.
	ErrBlockNotFound = errors.New("block not found")

	// ErrOffsetOutOfRange indicates an offset is outside the block text.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrDuplicateKey indicates a block key is already present in the document.
	ErrDuplicateKey = errors.New("duplicate block key")

	// ErrEmptyStyle indicates a style range without a style name.
	ErrEmptyStyle = errors.New("empty style name")
)
