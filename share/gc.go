package share

import (
	"errors"
	"log/slog"
)

// errStopScan short-circuits a link enumeration once a reference is found.
var errStopScan = errors.New("share: stop scan")

// stillReferenced reports whether any non-revoked link other than
// excludeID references blobHash. Any enumeration failure propagates so
// the caller aborts without deleting: a leaked blob is acceptable,
// deleting a blob a live link depends on is not.
func (s *Store) stillReferenced(blobHash, excludeID string) (bool, error) {
	referenced := false
	err := s.links.ForEach(func(l *ShareLink) error {
		if l.ShareID == excludeID || l.Revoked {
			return nil
		}
		if l.BlobHash == blobHash {
			referenced = true
			return errStopScan
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopScan) {
		return false, err
	}
	return referenced, nil
}

// maybeCollect deletes the blob for blobHash if no active link other
// than excludeID references it. Runs inline on the revoke path; the
// scan is O(number of links), acceptable there.
//
// The blob's advisory lock is held across scan and delete, and the scan
// re-runs just before the delete, narrowing the race against a
// concurrent create that would add a new reference.
func (s *Store) maybeCollect(blobHash, excludeID string) (bool, error) {
	fl, err := s.blobs.Lock(blobHash)
	if err != nil {
		return false, err
	}
	defer s.blobs.Unlock(fl)

	referenced, err := s.stillReferenced(blobHash, excludeID)
	if err != nil || referenced {
		return false, err
	}

	// Re-check just before the delete.
	referenced, err = s.stillReferenced(blobHash, excludeID)
	if err != nil || referenced {
		return false, err
	}

	removed, err := s.blobs.Delete(blobHash)
	if err != nil {
		return false, err
	}
	if removed {
		s.quota.Invalidate()
		s.log.Debug("blob collected", slog.String("blobHash", blobHash))
	}
	return removed, nil
}

// CollectOrphans removes blobs no link references: leftovers of crashes
// between blob write and link write, or of GC runs that failed after a
// revoke. Returns the collected hashes.
func (s *Store) CollectOrphans() ([]string, error) {
	hashes, err := s.blobs.List()
	if err != nil {
		return nil, err
	}

	var collected []string
	for _, h := range hashes {
		removed, err := s.maybeCollect(h, "")
		if err != nil {
			return collected, err
		}
		if removed {
			collected = append(collected, h)
		}
	}
	return collected, nil
}
