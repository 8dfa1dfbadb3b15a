package share

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// IDLength is the fixed length of a public share id.
const IDLength = 12

// idAlphabet is the fixed share id alphabet (62 symbols).
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// idRejectAbove bounds rejection sampling: bytes at or above the largest
// multiple of len(idAlphabet) are redrawn so every symbol is equally likely.
const idRejectAbove = 256 - (256 % len(idAlphabet)) // 248

// NewShareID generates a random share id from the fixed alphabet.
func NewShareID() (string, error) {
	var b strings.Builder
	b.Grow(IDLength)

	buf := make([]byte, IDLength*2)
	for b.Len() < IDLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("share: generate id: %w", err)
		}
		for _, c := range buf {
			if int(c) >= idRejectAbove {
				continue
			}
			b.WriteByte(idAlphabet[int(c)%len(idAlphabet)])
			if b.Len() == IDLength {
				break
			}
		}
	}
	return b.String(), nil
}

// ValidateShareID checks length and alphabet of a caller-supplied id.
func ValidateShareID(id string) error {
	if len(id) != IDLength {
		return fmt.Errorf("%w: got %d characters", ErrInvalidShareID, len(id))
	}
	for i := 0; i < len(id); i++ {
		if !strings.ContainsRune(idAlphabet, rune(id[i])) {
			return fmt.Errorf("%w: invalid character %q", ErrInvalidShareID, id[i])
		}
	}
	return nil
}
