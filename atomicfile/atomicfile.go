// Package atomicfile provides the two write primitives the store's
// correctness rests on. No in-process locks guard the on-disk layout;
// the filesystem's atomic link/rename is the sole synchronization
// primitive, so concurrent writers in separate processes are safe.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned by CreateUnique when the destination already
// exists. Callers treat it as "already taken", not as a failure.
var ErrExists = errors.New("atomicfile: destination already exists")

// writeTemp writes data to a new temp file in dir and returns its path.
// The file is synced before close so a later link/rename publishes fully
// durable bytes.
func writeTemp(dir string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("atomicfile: create temp: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("atomicfile: write temp: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("atomicfile: sync temp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("atomicfile: close temp: %w", err)
	}
	return tmp, nil
}

// CreateUnique writes data to path only if path does not exist yet.
// It writes a temp file in the same directory and hard-links it into
// place; link fails if the destination exists, which surfaces as
// ErrExists. Two processes racing to create the same path have exactly
// one winner.
func CreateUnique(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("atomicfile: create dir: %w", err)
	}

	tmp, err := writeTemp(dir, data)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrExists
		}
		return fmt.Errorf("atomicfile: link into place: %w", err)
	}
	return nil
}

// Replace writes data to path, unconditionally replacing any existing
// file. Readers concurrent with Replace see either the old content or
// the new content, never a partial file.
func Replace(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("atomicfile: create dir: %w", err)
	}

	tmp, err := writeTemp(dir, data)
	if err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomicfile: rename into place: %w", err)
	}
	return nil
}
