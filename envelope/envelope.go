// Package envelope defines the encrypted payload type stored by the share
// store and its content addressing. The store never decrypts an envelope;
// only byte identity matters, so hashing runs over a canonical
// serialization that is stable for byte-identical envelopes.
package envelope

import "fmt"

// Version is the current envelope serialization version tag. It is part of
// the canonical form, so bumping it changes every address.
const Version = 1

// Envelope is a client-encrypted playlist payload. IV and Ciphertext are
// opaque encoded strings produced by the client; Alg names the client-side
// cipher (e.g. "AES-GCM") and is carried verbatim.
type Envelope struct {
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	Alg        string `json:"alg"`
}

// Validate rejects malformed envelopes before any hashing or I/O.
func (e *Envelope) Validate() error {
	if e == nil {
		return ErrNilEnvelope
	}
	if e.IV == "" {
		return ErrMissingIV
	}
	if e.Ciphertext == "" {
		return ErrMissingCiphertext
	}
	if e.Alg == "" {
		return ErrMissingAlg
	}
	return nil
}

// HashSize is the length in bytes of a content or blob hash (SHA-256).
const HashSize = 32

// hexHashLen is the length of a hex-encoded hash string.
const hexHashLen = HashSize * 2

// ValidateHash checks that h is a well-formed lowercase hex hash string.
func ValidateHash(h string) error {
	if len(h) != hexHashLen {
		return fmt.Errorf("%w: got %d characters", ErrInvalidHash, len(h))
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return fmt.Errorf("%w: invalid character %q", ErrInvalidHash, c)
		}
	}
	return nil
}
