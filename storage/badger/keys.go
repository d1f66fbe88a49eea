package badger

import (
	"encoding/binary"

	"github.com/poiesic/asha/core"
)

// Key prefixes for different data types
const (
	embeddingPrefix = "emb:"
	manifestKey     = "manifest"
)

// makeEmbeddingPrefix generates the key prefix shared by every vector of a model.
// Format: prefix model 0x00
func makeEmbeddingPrefix(model string) []byte {
	buf := make([]byte, 0, len(embeddingPrefix)+len(model)+1)
	buf = append(buf, embeddingPrefix...)
	buf = append(buf, model...)
	return append(buf, 0)
}

// makeEmbeddingKey generates a key for a vector by model and content hash.
// Format: prefix model 0x00 hash
func makeEmbeddingKey(model string, hash core.ContentHash) []byte {
	prefix := makeEmbeddingPrefix(model)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(hash))
	return buf
}

// makeManifestKey generates the key for the index manifest.
func makeManifestKey() []byte {
	return []byte(manifestKey)
}
