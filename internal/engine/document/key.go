package document

import (
	"strings"

	"github.com/google/uuid"
)

// KeyLength is the number of characters in a generated block key.
const KeyLength = 8

// GenerateKey returns a short random key. If taken is non-nil, keys for which
// it reports true are discarded and a new one is drawn.
func GenerateKey(taken func(string) bool) string {
	for {
		key := strings.ReplaceAll(uuid.NewString(), "-", "")[:KeyLength]
		if taken == nil || !taken(key) {
			return key
		}
	}
}
