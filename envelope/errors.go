package envelope

import "errors"

var (
	// ErrNilEnvelope indicates a nil envelope was passed for hashing or storage.
	ErrNilEnvelope = errors.New("envelope: envelope is nil")

	// ErrMissingIV indicates the envelope has no initialization vector.
	ErrMissingIV = errors.New("envelope: missing iv")

	// ErrMissingCiphertext indicates the envelope has no ciphertext.
	ErrMissingCiphertext = errors.New("envelope: missing ciphertext")

	// ErrMissingAlg indicates the envelope has no algorithm identifier.
	ErrMissingAlg = errors.New("envelope: missing alg")

	// ErrInvalidHash indicates a hash string is not 64 lowercase hex characters.
	ErrInvalidHash = errors.New("envelope: hash must be 64 lowercase hex characters")
)
