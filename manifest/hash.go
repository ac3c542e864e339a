package manifest

import (
	"crypto/sha1"
	"encoding/hex"
)

// ComputeHash computes the SHA-1 digest of content bytes as lowercase
// hex, the form manifest consumers compare against.
func ComputeHash(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
