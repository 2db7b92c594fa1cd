package passhash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256Hasher is the legacy-compatible scheme: a single unsalted SHA-256
// digest, hex encoded. Deterministic, so stored digests from earlier
// releases verify unchanged. Weak against offline attacks; kept only for
// data compatibility.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password, encoded string) bool {
	computed, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(encoded)) == 1
}
