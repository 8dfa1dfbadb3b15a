package share

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/playshareorg/libplayshare-go/atomicfile"
)

// linkExt is the on-disk suffix of a link record.
const linkExt = ".json"

// LinkStore persists one JSON link record per share id under a flat
// directory. Creation is atomic create-if-absent, so two processes
// racing on the same id have exactly one winner.
type LinkStore struct {
	dir string
}

// NewLinkStore creates a link store rooted at dir.
func NewLinkStore(dir string) (*LinkStore, error) {
	if dir == "" {
		return nil, ErrInvalidRoot
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return &LinkStore{dir: dir}, nil
}

func (s *LinkStore) path(id string) string {
	return filepath.Join(s.dir, id+linkExt)
}

// Create writes a new link record keyed by its share id. Returns
// ErrIDTaken if a record for that id already exists.
func (s *LinkStore) Create(link *ShareLink) error {
	if err := ValidateShareID(link.ShareID); err != nil {
		return err
	}
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("share: encode link: %w", err)
	}

	err = atomicfile.CreateUnique(s.path(link.ShareID), data)
	if errors.Is(err, atomicfile.ErrExists) {
		return fmt.Errorf("%w: %s", ErrIDTaken, link.ShareID)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Get loads the link record for id. A missing file returns (nil, nil);
// a present-but-malformed file is corruption, not "not found".
func (s *LinkStore) Get(id string) (*ShareLink, error) {
	if err := ValidateShareID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return decodeLink(data, id)
}

// Update rewrites an existing link record in place (atomic replace).
// Used only for the one-way revoked transition.
func (s *LinkStore) Update(link *ShareLink) error {
	if err := ValidateShareID(link.ShareID); err != nil {
		return err
	}
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("share: encode link: %w", err)
	}
	if err := atomicfile.Replace(s.path(link.ShareID), data); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// ForEach invokes fn for every link record. Any read or parse failure
// aborts the enumeration with an error; callers on the GC path rely on
// that to fail safe instead of deleting a blob on partial knowledge.
func (s *LinkStore) ForEach(fn func(*ShareLink) error) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), linkExt) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), linkExt)
		if ValidateShareID(id) != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			// Deleted between ReadDir and ReadFile is not corruption.
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
		link, err := decodeLink(data, id)
		if err != nil {
			return err
		}
		if err := fn(link); err != nil {
			return err
		}
	}
	return nil
}

func decodeLink(data []byte, id string) (*ShareLink, error) {
	var link ShareLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptLink, id, err)
	}
	if link.Version != LinkVersion {
		return nil, fmt.Errorf("%w: %s: unknown version %d", ErrCorruptLink, id, link.Version)
	}
	if link.ShareID != id {
		return nil, fmt.Errorf("%w: %s: record claims id %s", ErrCorruptLink, id, link.ShareID)
	}
	if err := ValidateShareID(link.ShareID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptLink, err)
	}
	return &link, nil
}
