package share

import "time"

// LinkVersion is the current on-disk link record version.
const LinkVersion = 1

// ShareLink maps a public share id to a stored blob. One file per share.
//
// ContentHash addresses the canonicalized logical content and drives
// caller-side reuse decisions; BlobHash addresses the encrypted envelope
// and is the actual storage key. They differ whenever encryption drew a
// fresh IV, so blob-level dedup happens only when the caller reuses the
// same ciphertext intentionally.
type ShareLink struct {
	Version     int       `json:"version"`
	ShareID     string    `json:"shareId"`
	ContentHash string    `json:"contentHash"`
	BlobHash    string    `json:"blobHash"`
	CreatedAt   time.Time `json:"createdAt"`

	// Revoked transitions false -> true exactly once and never reverts.
	// Revoked records are kept on disk for audit history.
	Revoked bool `json:"revoked"`

	// EditTokenHash is the salted hash of the caller-held edit token.
	// Empty means the link is not revocable.
	EditTokenHash string `json:"editTokenHash,omitempty"`
}

// Revocable reports whether the link was created with an edit token.
func (l *ShareLink) Revocable() bool {
	return l.EditTokenHash != ""
}
