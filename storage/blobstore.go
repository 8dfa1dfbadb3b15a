package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/playshareorg/libplayshare-go/atomicfile"
	"github.com/playshareorg/libplayshare-go/envelope"
)

// blobExt is the on-disk suffix of a blob file (gzipped JSON record).
const blobExt = ".json.gz"

// FileStore implements Store on the local filesystem.
// Blobs live at: {baseDir}/{hh}/{hh}/{hash}.json.gz — two 2-character
// shard levels bound directory fan-out. Writes land via atomic
// create-if-absent, so concurrent writers of the same hash have exactly
// one physical winner and readers never see a partial file.
type FileStore struct {
	baseDir string
	lockDir string
}

// NewFileStore creates a blob store rooted at baseDir. Advisory per-blob
// lock files live under lockDir (empty disables locking); the same locks
// are shared with the garbage collection path to narrow the create/GC race.
func NewFileStore(baseDir, lockDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidBaseDir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if lockDir != "" {
		if err := os.MkdirAll(lockDir, 0700); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
	}
	return &FileStore{baseDir: baseDir, lockDir: lockDir}, nil
}

// BlobPath returns the sharded filesystem path for a blob hash.
func BlobPath(baseDir, hash string) string {
	return filepath.Join(baseDir, hash[:2], hash[2:4], hash+blobExt)
}

func (fs *FileStore) path(hash string) string {
	return BlobPath(fs.baseDir, hash)
}

func validateHash(hash string) error {
	if err := envelope.ValidateHash(hash); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	return nil
}

// Lock acquires the advisory lock for a blob hash, blocking until held.
// Returns a nil lock (no-op unlock) when locking is disabled.
func (fs *FileStore) Lock(hash string) (*flock.Flock, error) {
	if fs.lockDir == "" {
		return nil, nil
	}
	if err := validateHash(hash); err != nil {
		return nil, err
	}
	fl := flock.New(filepath.Join(fs.lockDir, hash+".lock"))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("%w: lock blob %s: %w", ErrIOFailure, hash, err)
	}
	return fl, nil
}

// Unlock releases a lock returned by Lock. Safe on nil.
func (fs *FileStore) Unlock(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}

// Put stores env under hash. The envelope's recomputed address must equal
// hash; a mismatch is rejected before any I/O. Returns true only if this
// call created the blob file.
func (fs *FileStore) Put(hash string, env *envelope.Envelope) (bool, error) {
	if err := validateHash(hash); err != nil {
		return false, err
	}
	got, err := envelope.Hash(env)
	if err != nil {
		return false, err
	}
	if got != hash {
		return false, fmt.Errorf("%w: envelope hashes to %s, not %s", ErrIntegrity, got, hash)
	}

	record, err := encodeRecord(hash, env)
	if err != nil {
		return false, err
	}
	compressed, err := compressGzip(record)
	if err != nil {
		return false, err
	}

	err = atomicfile.CreateUnique(fs.path(hash), compressed)
	if errors.Is(err, atomicfile.ErrExists) {
		// Dedup fast path: content is fully determined by its hash, so
		// an existing file already holds identical bytes.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return true, nil
}

// Get reads, decompresses and parses the blob for hash, then re-verifies
// integrity: the stored checksum and the recomputed envelope address must
// both equal the requested hash. Guards against disk corruption and
// path/hash mismatches.
func (fs *FileStore) Get(hash string) (*envelope.Envelope, error) {
	if err := validateHash(hash); err != nil {
		return nil, err
	}

	compressed, err := os.ReadFile(fs.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	record, err := decompressGzip(compressed)
	if err != nil {
		return nil, err
	}
	rec, err := decodeRecord(record)
	if err != nil {
		return nil, err
	}

	if rec.Checksum != hash {
		return nil, fmt.Errorf("%w: stored checksum %s != %s", ErrIntegrity, rec.Checksum, hash)
	}
	recomputed, err := envelope.Hash(rec.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	if recomputed != hash {
		return nil, fmt.Errorf("%w: envelope rehashes to %s, not %s", ErrIntegrity, recomputed, hash)
	}

	return rec.Encrypted, nil
}

// Has checks whether a blob file exists for hash.
func (fs *FileStore) Has(hash string) (bool, error) {
	if err := validateHash(hash); err != nil {
		return false, err
	}
	_, err := os.Stat(fs.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return true, nil
}

// Delete removes the blob file for hash. Already-absent is success.
func (fs *FileStore) Delete(hash string) (bool, error) {
	if err := validateHash(hash); err != nil {
		return false, err
	}
	err := os.Remove(fs.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return true, nil
}

// List returns all stored blob hashes by walking the two shard levels.
// Junk entries (wrong names, stray files) are skipped.
func (fs *FileStore) List() ([]string, error) {
	var result []string

	outer, err := os.ReadDir(fs.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	for _, o := range outer {
		if !o.IsDir() || len(o.Name()) != 2 {
			continue
		}
		inner, err := os.ReadDir(filepath.Join(fs.baseDir, o.Name()))
		if err != nil {
			continue
		}
		for _, i := range inner {
			if !i.IsDir() || len(i.Name()) != 2 {
				continue
			}
			files, err := os.ReadDir(filepath.Join(fs.baseDir, o.Name(), i.Name()))
			if err != nil {
				continue
			}
			for _, f := range files {
				if f.IsDir() {
					continue
				}
				hash := strings.TrimSuffix(f.Name(), blobExt)
				if hash == f.Name() || envelope.ValidateHash(hash) != nil {
					continue
				}
				result = append(result, hash)
			}
		}
	}
	return result, nil
}
