// Package share is the shared-playlist persistence layer: a
// content-addressable, deduplicating, crash-safe store for encrypted
// playlist blobs with per-share revocation and reference-counted
// garbage collection of orphaned data.
//
// A create writes the blob first and the link record second, so a crash
// between the two leaves an orphan blob (harmless, collectible) rather
// than a dangling link.
package share

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/playshareorg/libplayshare-go/audit"
	"github.com/playshareorg/libplayshare-go/envelope"
	"github.com/playshareorg/libplayshare-go/quota"
	"github.com/playshareorg/libplayshare-go/storage"
	"github.com/playshareorg/libplayshare-go/token"
)

// maxIDAttempts bounds the share id collision retry loop.
const maxIDAttempts = 5

// linkRecordEstimate approximates the on-disk size of one link record
// for quota accounting.
const linkRecordEstimate = 512

// Options configures optional store collaborators. The zero value is a
// store with no quota, no audit log and no logging.
type Options struct {
	Quota  *quota.Enforcer
	Audit  *audit.Log
	Logger *slog.Logger
}

// Store is the collaborator-facing facade over the link store, blob
// store, revocation authority and garbage collector. All operations are
// synchronous; GC runs inline on the revoke path only.
type Store struct {
	root  string
	links *LinkStore
	blobs *storage.FileStore
	quota *quota.Enforcer
	audit *audit.Log
	log   *slog.Logger

	// newID is swappable so collision retries are testable.
	newID func() (string, error)
}

// Open initializes a store rooted at root:
//
//	<root>/links/<shareId>.json
//	<root>/blobs/<hh>/<hh>/<hash>.json.gz
//	<root>/locks/<hash>.lock
func Open(root string, opts Options) (*Store, error) {
	if root == "" {
		return nil, ErrInvalidRoot
	}

	links, err := NewLinkStore(filepath.Join(root, "links"))
	if err != nil {
		return nil, err
	}
	blobs, err := storage.NewFileStore(filepath.Join(root, "blobs"), filepath.Join(root, "locks"))
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Store{
		root:  root,
		links: links,
		blobs: blobs,
		quota: opts.Quota,
		audit: opts.Audit,
		log:   logger,
		newID: NewShareID,
	}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Close releases store resources (the audit log, if any).
func (s *Store) Close() error {
	return s.audit.Close()
}

// CreateResult holds the output of CreateShare.
type CreateResult struct {
	ShareID string

	// EditToken is the plaintext revocation secret, returned exactly
	// once. It is never persisted and cannot be recovered later.
	EditToken string

	// BlobCreated is false when the envelope deduplicated against an
	// existing blob.
	BlobCreated bool
}

// CreateShare stores env under its canonical address and creates a new
// link record for it. contentHash is the caller-computed address of the
// logical (plaintext) content, carried for reuse decisions; the store
// never verifies it against the ciphertext. With revocable set, a fresh
// edit token is generated and its salted hash stored on the link.
func (s *Store) CreateShare(env *envelope.Envelope, contentHash string, revocable bool) (*CreateResult, error) {
	canonical, err := envelope.Canonical(env)
	if err != nil {
		return nil, err
	}
	blobHash, err := envelope.Hash(env)
	if err != nil {
		return nil, err
	}
	if err := envelope.ValidateHash(contentHash); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContentHash, err)
	}

	if err := s.quota.Check(int64(len(canonical)) + linkRecordEstimate); err != nil {
		return nil, err
	}

	// Hold the blob's advisory lock across blob write and link create so
	// an inline GC for the same hash cannot interleave.
	fl, err := s.blobs.Lock(blobHash)
	if err != nil {
		return nil, err
	}
	defer s.blobs.Unlock(fl)

	// Blob first, link second.
	created, err := s.blobs.Put(blobHash, env)
	if err != nil {
		return nil, err
	}

	var editToken, editTokenHash string
	if revocable {
		editToken, err = token.NewSecret()
		if err != nil {
			return nil, err
		}
		editTokenHash, err = token.HashSecret(editToken)
		if err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return nil, err
		}
		link := &ShareLink{
			Version:       LinkVersion,
			ShareID:       id,
			ContentHash:   contentHash,
			BlobHash:      blobHash,
			CreatedAt:     time.Now().UTC(),
			EditTokenHash: editTokenHash,
		}
		err = s.links.Create(link)
		if err == nil {
			s.log.Info("share created",
				slog.String("shareId", id),
				slog.String("blobHash", blobHash),
				slog.Bool("blobCreated", created),
				slog.Bool("revocable", revocable))
			return &CreateResult{ShareID: id, EditToken: editToken, BlobCreated: created}, nil
		}
		if errors.Is(err, ErrIDTaken) {
			s.log.Debug("share id collision, retrying", slog.String("shareId", id))
			continue
		}
		return nil, err
	}
	// The blob may now be an orphan; harmless, a later sweep collects it.
	return nil, fmt.Errorf("%w: after %d attempts", ErrIDExhausted, maxIDAttempts)
}

// ReadShare resolves id to its blob and returns the envelope. Missing
// and revoked shares both return (nil, nil); a malformed id is a
// validation error and never touches storage.
func (s *Store) ReadShare(id string) (*envelope.Envelope, error) {
	if err := ValidateShareID(id); err != nil {
		return nil, err
	}
	link, err := s.links.Get(id)
	if err != nil {
		return nil, err
	}
	if link == nil || link.Revoked {
		return nil, nil
	}
	return s.blobs.Get(link.BlobHash)
}

// GetLink exposes the raw link record for id (nil if absent). Intended
// for admin tooling, not the share read path.
func (s *Store) GetLink(id string) (*ShareLink, error) {
	return s.links.Get(id)
}

// Stats summarizes store contents.
type Stats struct {
	Blobs        int
	ActiveLinks  int
	RevokedLinks int
	UsedBytes    int64
	QuotaBytes   int64
}

// Stat counts links and blobs and measures disk usage.
func (s *Store) Stat() (*Stats, error) {
	st := &Stats{QuotaBytes: s.quota.Limit()}

	hashes, err := s.blobs.List()
	if err != nil {
		return nil, err
	}
	st.Blobs = len(hashes)

	err = s.links.ForEach(func(l *ShareLink) error {
		if l.Revoked {
			st.RevokedLinks++
		} else {
			st.ActiveLinks++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	used, err := quota.New(s.root, 0, 0).Usage()
	if err != nil {
		return nil, err
	}
	st.UsedBytes = used
	return st, nil
}
