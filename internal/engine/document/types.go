package document

// BlockType identifies how a block is rendered (paragraph, header, code, ...).
// Unknown values are preserved as-is so hosts can define their own types.
type BlockType string

const (
	TypeUnstyled          BlockType = "unstyled"
	TypeParagraph         BlockType = "paragraph"
	TypeHeaderOne         BlockType = "header-one"
	TypeHeaderTwo         BlockType = "header-two"
	TypeHeaderThree       BlockType = "header-three"
	TypeHeaderFour        BlockType = "header-four"
	TypeHeaderFive        BlockType = "header-five"
	TypeHeaderSix         BlockType = "header-six"
	TypeBlockquote        BlockType = "blockquote"
	TypeCodeBlock         BlockType = "code-block"
	TypeUnorderedListItem BlockType = "unordered-list-item"
	TypeOrderedListItem   BlockType = "ordered-list-item"
)

// String returns the type name.
func (t BlockType) String() string {
	if t == "" {
		return string(TypeUnstyled)
	}
	return string(t)
}

// IsKnown returns true for the built-in block types.
func (t BlockType) IsKnown() bool {
	switch t {
	case TypeUnstyled, TypeParagraph,
		TypeHeaderOne, TypeHeaderTwo, TypeHeaderThree,
		TypeHeaderFour, TypeHeaderFive, TypeHeaderSix,
		TypeBlockquote, TypeCodeBlock,
		TypeUnorderedListItem, TypeOrderedListItem:
		return true
	default:
		return false
	}
}

// HeaderLevel returns 1-6 for header types and 0 otherwise.
func (t BlockType) HeaderLevel() int {
	switch t {
	case TypeHeaderOne:
		return 1
	case TypeHeaderTwo:
		return 2
	case TypeHeaderThree:
		return 3
	case TypeHeaderFour:
		return 4
	case TypeHeaderFive:
		return 5
	case TypeHeaderSix:
		return 6
	default:
		return 0
	}
}

// IsParagraph returns true for the plain paragraph types.
func (t BlockType) IsParagraph() bool {
	return t == "" || t == TypeUnstyled || t == TypeParagraph
}

// Style is an inline style name. The engine treats it as opaque; hosts map
// names to rendering directives.
type Style string

const (
	StyleBold          Style = "BOLD"
	StyleItalic        Style = "ITALIC"
	StyleUnderline     Style = "UNDERLINE"
	StyleCode          Style = "CODE"
	StyleStrikethrough Style = "STRIKETHROUGH"
	StyleColorRed      Style = "color-red"
)

// String returns the style name.
func (s Style) String() string {
	return string(s)
}
