package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short, non-reversible digest of value for embedding
// in token claims.
func Fingerprint(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}
