package share

import "errors"

var (
	// ErrInvalidRoot indicates the store root path is invalid.
	ErrInvalidRoot = errors.New("share: invalid store root")

	// ErrInvalidShareID indicates a share id with the wrong length or
	// alphabet. Rejected before any I/O.
	ErrInvalidShareID = errors.New("share: invalid share id")

	// ErrInvalidContentHash indicates a malformed caller-supplied
	// content hash.
	ErrInvalidContentHash = errors.New("share: invalid content hash")

	// ErrIDTaken indicates a link record already exists for the share id.
	// Recovered internally by retrying with a fresh id.
	ErrIDTaken = errors.New("share: share id already taken")

	// ErrIDExhausted indicates id generation kept colliding past the
	// retry budget.
	ErrIDExhausted = errors.New("share: could not allocate a unique share id")

	// ErrCorruptLink indicates a present-but-malformed link record.
	// Fatal for that single record, not for the whole store.
	ErrCorruptLink = errors.New("share: corrupt link record")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("share: I/O failure")
)
