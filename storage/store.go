package storage

import "github.com/playshareorg/libplayshare-go/envelope"

// Store provides content-addressed, deduplicating storage for encrypted
// playlist envelopes. Keys are lowercase hex SHA-256 addresses computed
// by envelope.Hash.
type Store interface {
	// Put stores env under hash with create-if-absent semantics.
	// Returns true if this call physically created the blob, false if a
	// blob with that hash already existed (dedup fast path, no-op).
	// Never overwrites an existing blob.
	Put(hash string, env *envelope.Envelope) (bool, error)

	// Get reads a blob and re-verifies both the stored checksum and the
	// recomputed envelope hash against the requested hash.
	Get(hash string) (*envelope.Envelope, error)

	// Has checks whether a blob exists for hash.
	Has(hash string) (bool, error)

	// Delete removes the blob for hash. Returns true if a file was
	// removed; already-absent is success, not an error.
	Delete(hash string) (bool, error)

	// List returns all stored blob hashes.
	List() ([]string, error)
}
