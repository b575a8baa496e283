package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// Full-length hashes are used so distinct documents can never share an
// artifact.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey builds the cache key for a rendered artifact: the document
// hash plus every render option that affects the output bytes.
func ArtifactKey(docHash, format, labelMode string, onlySimpleRegions bool) string {
	return hashKey("artifact", docHash, format, labelMode, onlySimpleRegions)
}

// hashKey generates a cache key "prefix:hash(parts...)".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}
