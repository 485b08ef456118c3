package serialize

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dshills/blockpad/internal/engine/document"
)

// CurrentVersion is the version written by Marshal.
const CurrentVersion = 1

// Errors returned by Deserialize.
var (
	// ErrMalformed indicates a payload that cannot be turned into a document.
	ErrMalformed = errors.New("malformed document payload")

	// ErrUnsupportedVersion indicates a payload written by a newer version.
	ErrUnsupportedVersion = errors.New("unsupported document version")
)

// PersistedDocument is the serialized form of a document.
type PersistedDocument struct {
	Version int              `json:"version"`
	Blocks  []PersistedBlock `json:"blocks"`
}

// PersistedBlock is the serialized form of a block.
type PersistedBlock struct {
	Text              string                `json:"text"`
	Type              string                `json:"type"`
	InlineStyleRanges []PersistedStyleRange `json:"inlineStyleRanges"`
}

// PersistedStyleRange is the serialized form of a style range.
type PersistedStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// Serialize converts doc to its persisted form.
func Serialize(doc *document.Document) PersistedDocument {
	p := PersistedDocument{
		Version: CurrentVersion,
		Blocks:  make([]PersistedBlock, 0, doc.Len()),
	}
	for _, b := range doc.Blocks() {
		pb := PersistedBlock{
			Text:              b.Text(),
			Type:              string(b.Type()),
			InlineStyleRanges: make([]PersistedStyleRange, 0, len(b.Styles())),
		}
		for _, r := range b.Styles() {
			pb.InlineStyleRanges = append(pb.InlineStyleRanges, PersistedStyleRange{
				Offset: r.Start,
				Length: r.Len(),
				Style:  string(r.Style),
			})
		}
		p.Blocks = append(p.Blocks, pb)
	}
	return p
}

// Marshal serializes doc to JSON.
func Marshal(doc *document.Document) ([]byte, error) {
	return json.Marshal(Serialize(doc))
}

// MarshalIndent serializes doc to indented JSON.
func MarshalIndent(doc *document.Document) ([]byte, error) {
	return json.MarshalIndent(Serialize(doc), "", "  ")
}

// Deserialize parses a JSON payload into a document with fresh block keys.
func Deserialize(data []byte) (*document.Document, error) {
	if _, err := Inspect(data); err != nil {
		return nil, err
	}
	var p PersistedDocument
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return p.Document()
}

// Document validates p and builds a document from it.
func (p PersistedDocument) Document() (*document.Document, error) {
	if p.Version > CurrentVersion {
		return nil, fmt.Errorf("version %d: %w", p.Version, ErrUnsupportedVersion)
	}
	if len(p.Blocks) == 0 {
		return nil, fmt.Errorf("%w: blocks: no blocks", ErrMalformed)
	}

	blocks := make([]document.Block, 0, len(p.Blocks))
	for i, pb := range p.Blocks {
		b, err := pb.block()
		if err != nil {
			return nil, fmt.Errorf("%w: blocks[%d].%w", ErrMalformed, i, err)
		}
		blocks = append(blocks, b)
	}
	return document.New(blocks...)
}

func (pb PersistedBlock) block() (document.Block, error) {
	length := utf8.RuneCountInString(pb.Text)
	typ := document.BlockType(pb.Type)
	if typ == "" {
		typ = document.TypeUnstyled
	}

	ranges := make([]document.StyleRange, 0, len(pb.InlineStyleRanges))
	for j, r := range pb.InlineStyleRanges {
		switch {
		case r.Style == "":
			return document.Block{}, fmt.Errorf("inlineStyleRanges[%d].style: %w", j, document.ErrEmptyStyle)
		case r.Offset < 0 || r.Length < 0:
			return document.Block{}, fmt.Errorf("inlineStyleRanges[%d]: negative offset or length: %w", j, document.ErrRangeInvalid)
		case r.Offset > length || r.Length > length-r.Offset:
			return document.Block{}, fmt.Errorf("inlineStyleRanges[%d]: range %d+%d exceeds text length %d: %w",
				j, r.Offset, r.Length, length, document.ErrOffsetOutOfRange)
		case r.Length == 0:
			continue
		}
		ranges = append(ranges, document.StyleRange{
			Style: document.Style(r.Style),
			Start: r.Offset,
			End:   r.Offset + r.Length,
		})
	}
	return document.NewBlock("", typ, pb.Text, ranges...), nil
}
