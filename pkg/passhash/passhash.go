// Package passhash provides the password digest schemes used by the account
// store. The sha256 scheme reproduces the digests written by earlier
// releases so existing accounts keep authenticating; argon2id is the salted,
// memory-hard scheme recommended for new installations.
package passhash

import "fmt"

// Scheme names accepted in configuration.
const (
	SchemeSHA256   = "sha256"
	SchemeArgon2id = "argon2id"
)

// Hasher derives and verifies password digests.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// New returns the hasher for the named scheme.
func New(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeArgon2id:
		return Argon2Hasher{}, nil
	default:
		return nil, fmt.Errorf("passhash: unknown scheme %q", scheme)
	}
}
