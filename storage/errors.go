package storage

import "errors"

var (
	// ErrNotFound indicates no blob exists for the given hash.
	ErrNotFound = errors.New("storage: blob not found")

	// ErrInvalidHash indicates the blob hash is not a 64-character
	// lowercase hex string.
	ErrInvalidHash = errors.New("storage: invalid blob hash")

	// ErrIntegrity indicates a stored blob failed hash or checksum
	// re-verification on read. Surfaced as a hard failure, never
	// silently repaired.
	ErrIntegrity = errors.New("storage: blob integrity check failed")

	// ErrUnknownVersion indicates a blob record with an unrecognized
	// version tag.
	ErrUnknownVersion = errors.New("storage: unknown blob record version")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("storage: I/O failure")

	// ErrInvalidBaseDir indicates the base directory path is invalid.
	ErrInvalidBaseDir = errors.New("storage: invalid base directory")

	// ErrDecompressedTooLarge indicates decompressed data exceeds the
	// safety limit.
	ErrDecompressedTooLarge = errors.New("storage: decompressed data exceeds maximum size")
)
