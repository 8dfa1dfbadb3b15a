package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// canonicalForm is the fixed field set serialized for hashing. Field order
// is the struct declaration order, which encoding/json preserves, so the
// serialization is deterministic: same envelope bytes, same output bytes.
type canonicalForm struct {
	V          int    `json:"v"`
	Alg        string `json:"alg"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
}

// Canonical returns the deterministic byte serialization of an envelope.
// The envelope is validated first; malformed envelopes never reach the
// hasher.
func Canonical(e *Envelope) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(canonicalForm{
		V:          Version,
		Alg:        e.Alg,
		IV:         e.IV,
		Ciphertext: e.Ciphertext,
	})
	if err != nil {
		return nil, fmt.Errorf("envelope: canonicalize: %w", err)
	}
	return data, nil
}

// Hash returns the lowercase hex SHA-256 of the canonical serialization.
// This is the single source of truth for blob addressing: the same
// function runs when writing a blob and when re-verifying it on read.
func Hash(e *Envelope) (string, error) {
	data, err := Canonical(e)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
