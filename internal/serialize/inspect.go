package serialize

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Info summarizes a payload without decoding it.
type Info struct {
	// Version is the payload version; 0 for legacy payloads.
	Version int

	// Blocks is the number of blocks in the payload.
	Blocks int

	// Legacy is true for payloads carrying editor-internal fields such as
	// block keys or an entity map.
	Legacy bool
}

// Inspect reads the version and shape of a payload. It fails with
// ErrMalformed for invalid JSON or a missing block array.
func Inspect(data []byte) (Info, error) {
	if !gjson.ValidBytes(data) {
		return Info{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Info{}, fmt.Errorf("%w: payload is not an object", ErrMalformed)
	}
	blocks := root.Get("blocks")
	if !blocks.IsArray() {
		return Info{}, fmt.Errorf("%w: blocks: missing block array", ErrMalformed)
	}

	return Info{
		Version: int(root.Get("version").Int()),
		Blocks:  int(root.Get("blocks.#").Int()),
		Legacy:  root.Get("entityMap").Exists() || root.Get("blocks.0.key").Exists(),
	}, nil
}

// legacyBlockFields are per-block fields dropped by Migrate.
var legacyBlockFields = []string{"key", "depth", "entityRanges", "data"}

// Migrate rewrites a legacy payload to the current version. Current payloads
// are returned unchanged; payloads from a newer version fail with
// ErrUnsupportedVersion.
func Migrate(data []byte) ([]byte, error) {
	info, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	if info.Version > CurrentVersion {
		return nil, fmt.Errorf("version %d: %w", info.Version, ErrUnsupportedVersion)
	}
	if info.Version == CurrentVersion && !info.Legacy {
		return data, nil
	}

	out := data
	if out, err = sjson.DeleteBytes(out, "entityMap"); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	for i := 0; i < info.Blocks; i++ {
		for _, field := range legacyBlockFields {
			if out, err = sjson.DeleteBytes(out, fmt.Sprintf("blocks.%d.%s", i, field)); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
	}
	if out, err = sjson.SetBytes(out, "version", CurrentVersion); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return out, nil
}
