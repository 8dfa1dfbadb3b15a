package share

import (
	"log/slog"

	"github.com/playshareorg/libplayshare-go/audit"
	"github.com/playshareorg/libplayshare-go/token"
)

// RevokeResult classifies the outcome of a revoke attempt.
type RevokeResult int

const (
	// RevokeOk: token matched, link revoked, GC ran for its blob.
	RevokeOk RevokeResult = iota

	// RevokeNotFound: no link exists for the share id.
	RevokeNotFound

	// RevokeForbidden: the presented token is too short or does not
	// match the stored hash.
	RevokeForbidden

	// RevokeAlreadyRevoked: the link was revoked earlier; idempotent
	// re-revoke is not an error.
	RevokeAlreadyRevoked

	// RevokeUnsupported: the link was created without an edit token and
	// cannot be revoked.
	RevokeUnsupported
)

func (r RevokeResult) String() string {
	switch r {
	case RevokeOk:
		return "ok"
	case RevokeNotFound:
		return "not found"
	case RevokeForbidden:
		return "forbidden"
	case RevokeAlreadyRevoked:
		return "already revoked"
	case RevokeUnsupported:
		return "not revocable"
	default:
		return "unknown"
	}
}

// RevokeShare validates the presented edit token against the stored hash
// and, on a match, marks the link revoked and garbage-collects its blob
// if no other active link references it.
//
// The hash comparison is constant-time over fixed-length derived keys;
// it is the only defense against forged tokens. Both NotFound and
// Forbidden are safe to return to untrusted callers since tokens are not
// guessable.
func (s *Store) RevokeShare(id, presented string) (RevokeResult, error) {
	// Entropy floor: cheap rejection before touching storage.
	if len(presented) < token.MinSecretLen {
		return RevokeForbidden, nil
	}
	if ValidateShareID(id) != nil {
		return RevokeNotFound, nil
	}

	link, err := s.links.Get(id)
	if err != nil {
		return RevokeNotFound, err
	}
	if link == nil {
		return RevokeNotFound, nil
	}
	if !link.Revocable() {
		return RevokeUnsupported, nil
	}
	if link.Revoked {
		return RevokeAlreadyRevoked, nil
	}

	ok, err := token.VerifySecret(presented, link.EditTokenHash)
	if err != nil {
		// Unparseable stored hash is record corruption.
		return RevokeForbidden, err
	}
	if !ok {
		return RevokeForbidden, nil
	}

	// One-way transition; the record stays on disk for audit history.
	link.Revoked = true
	if err := s.links.Update(link); err != nil {
		return RevokeForbidden, err
	}

	// A GC failure leaks a blob at worst; the revoke itself succeeded.
	collected, err := s.maybeCollect(link.BlobHash, id)
	if err != nil {
		s.log.Warn("gc after revoke failed",
			slog.String("shareId", id),
			slog.String("blobHash", link.BlobHash),
			slog.String("error", err.Error()))
	}

	if err := s.audit.Record(audit.Event{
		ShareID:       id,
		BlobHash:      link.BlobHash,
		BlobCollected: collected,
	}); err != nil {
		s.log.Warn("audit append failed",
			slog.String("shareId", id),
			slog.String("error", err.Error()))
	}

	s.log.Info("share revoked",
		slog.String("shareId", id),
		slog.String("blobHash", link.BlobHash),
		slog.Bool("blobCollected", collected))
	return RevokeOk, nil
}
