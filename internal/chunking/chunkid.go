package chunking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// chunkID derives a deterministic chunk identifier from its content and
// position so that two runs over identical input produce byte-identical
// chunk sequences (spec.md §4.5, "Idempotence"). A random ID (e.g. from
// google/uuid, used elsewhere for per-invocation correlation) would
// violate that guarantee, so this hashes content instead. Grounded on
// the teacher's internal/indexer/helpers.go checksum idiom
// (crypto/sha256, hex-encoded, truncated for readability).
func chunkID(elementPath, strategy string, index int, content string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%s", elementPath, strategy, index, content)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
