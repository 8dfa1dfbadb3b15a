package quota

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBytes(t *testing.T, path string, n int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, make([]byte, n), 0600))
}

func TestCheck_Disabled(t *testing.T) {
	e := New(t.TempDir(), 0, 0)
	assert.NoError(t, e.Check(1<<40))
}

func TestCheck_NilEnforcer(t *testing.T) {
	var e *Enforcer
	assert.NoError(t, e.Check(100))
}

func TestCheck_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "a"), 100)

	e := New(dir, 1000, 0)
	assert.NoError(t, e.Check(100))
}

func TestCheck_OverLimit(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "a"), 900)

	e := New(dir, 1000, 0)
	assert.ErrorIs(t, e.Check(200), ErrQuotaExceeded)
}

func TestCheck_ExactlyAtLimit(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "a"), 500)

	// used + estimated == limit does not exceed.
	e := New(dir, 1000, 0)
	assert.NoError(t, e.Check(500))
	assert.ErrorIs(t, e.Check(501), ErrQuotaExceeded)
}

func TestUsage_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "links", "a.json"), 10)
	writeBytes(t, filepath.Join(dir, "blobs", "ab", "cd", "x.json.gz"), 20)

	e := New(dir, 0, 0)
	used, err := e.Usage()
	require.NoError(t, err)
	assert.Equal(t, int64(30), used)
}

func TestUsage_SkipsLockAndTempFiles(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "data.json"), 10)
	writeBytes(t, filepath.Join(dir, "locks", "abc.lock"), 500)
	writeBytes(t, filepath.Join(dir, ".tmp-12345"), 500)

	e := New(dir, 0, 0)
	used, err := e.Usage()
	require.NoError(t, err)
	assert.Equal(t, int64(10), used)
}

func TestUsage_MissingRoot(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "nope"), 0, 0)
	used, err := e.Usage()
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)
}

func TestUsage_TTLCache(t *testing.T) {
	dir := t.TempDir()
	writeBytes(t, filepath.Join(dir, "a"), 100)

	e := New(dir, 0, time.Minute)
	used, err := e.Usage()
	require.NoError(t, err)
	assert.Equal(t, int64(100), used)

	// Growth is invisible until the TTL expires or the cache is dropped.
	writeBytes(t, filepath.Join(dir, "b"), 100)
	used, err = e.Usage()
	require.NoError(t, err)
	assert.Equal(t, int64(100), used)

	e.Invalidate()
	used, err = e.Usage()
	require.NoError(t, err)
	assert.Equal(t, int64(200), used)
}
