// Package quota enforces the store's soft storage limit. The enforcer is
// an explicit, passed-in component: its byte count is recomputed per call
// or cached with an explicit TTL, never held in a hidden process-wide
// counter.
package quota

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrQuotaExceeded indicates a write would push total storage over the
// configured soft limit. Callers must not retry immediately.
var ErrQuotaExceeded = errors.New("quota: storage limit exceeded")

// Enforcer gates writes against a soft byte limit measured over a
// directory tree. A limit of zero disables enforcement. This is a
// best-effort gate, not a reservation system: concurrent writers can
// both pass the check and jointly exceed the limit by a small margin.
type Enforcer struct {
	root  string
	limit int64
	ttl   time.Duration

	mu       sync.Mutex
	cachedAt time.Time
	cached   int64
}

// New creates an enforcer over root with the given soft limit in bytes.
// ttl controls how long a measured byte count is reused; zero recomputes
// on every check.
func New(root string, limit int64, ttl time.Duration) *Enforcer {
	return &Enforcer{root: root, limit: limit, ttl: ttl}
}

// Limit returns the configured soft limit in bytes (0 = disabled).
func (e *Enforcer) Limit() int64 {
	if e == nil {
		return 0
	}
	return e.limit
}

// Check returns ErrQuotaExceeded if writing estimated more bytes would
// exceed the soft limit. With no limit configured it is a no-op.
func (e *Enforcer) Check(estimated int64) error {
	if e == nil || e.limit <= 0 {
		return nil
	}
	used, err := e.usage()
	if err != nil {
		return err
	}
	if used+estimated > e.limit {
		return fmt.Errorf("%w: %d used + %d new > %d limit", ErrQuotaExceeded, used, estimated, e.limit)
	}
	return nil
}

// Usage returns the measured byte count under root, honoring the TTL cache.
func (e *Enforcer) Usage() (int64, error) {
	if e == nil {
		return 0, nil
	}
	return e.usage()
}

func (e *Enforcer) usage() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ttl > 0 && !e.cachedAt.IsZero() && time.Since(e.cachedAt) < e.ttl {
		return e.cached, nil
	}

	used, err := measure(e.root)
	if err != nil {
		return 0, err
	}
	e.cached = used
	e.cachedAt = time.Now()
	return used, nil
}

// measure walks the tree under root and sums regular file sizes.
// Advisory lock files and in-flight temp files are bookkeeping, not
// stored payload, and are not counted.
func measure(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A file deleted mid-walk is not an accounting error.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasSuffix(name, ".lock") || strings.HasPrefix(name, ".tmp-") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("quota: measure %s: %w", root, err)
	}
	return total, nil
}

// Invalidate drops the cached measurement so the next check re-walks the
// tree. Useful after large deletes.
func (e *Enforcer) Invalidate() {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.cachedAt = time.Time{}
	e.mu.Unlock()
}
