// Package token generates and verifies the edit tokens that prove the
// right to revoke a share. Only a salted hash is ever persisted; the
// plaintext token is returned to the caller exactly once at creation.
package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// secretBytes is the entropy of a generated token (hex-encoded on output).
	secretBytes = 32

	// MinSecretLen is the entropy floor: presented tokens shorter than
	// this are rejected outright, before any storage access.
	MinSecretLen = 16

	// scheme tags the stored hash encoding.
	scheme = "argon2id"

	saltBytes = 16
	hashBytes = 32

	// Argon2id parameters.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var (
	// ErrBadHashEncoding indicates a stored token hash that does not parse.
	ErrBadHashEncoding = errors.New("token: malformed stored hash")
)

// NewSecret returns a fresh high-entropy token as a 64-character hex string.
func NewSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashSecret derives a salted Argon2id hash of secret, encoded as
// "argon2id$<salt-hex>$<hash-hex>". A fresh random salt is drawn per call.
func HashSecret(secret string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("token: generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, hashBytes)
	return scheme + "$" + hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

// VerifySecret recomputes the hash of secret under the stored salt and
// compares it to the stored hash in constant time. The comparison runs
// over fixed-length derived keys, so unequal inputs never short-circuit.
func VerifySecret(secret, stored string) (bool, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return false, ErrBadHashEncoding
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) != saltBytes {
		return false, ErrBadHashEncoding
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != hashBytes {
		return false, ErrBadHashEncoding
	}

	got := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, hashBytes)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
