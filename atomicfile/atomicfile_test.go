package atomicfile

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- CreateUnique tests ---

func TestCreateUnique(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")

	err := CreateUnique(path, []byte("content"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestCreateUnique_AlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")

	require.NoError(t, CreateUnique(path, []byte("first")))
	err := CreateUnique(path, []byte("second"))
	assert.ErrorIs(t, err, ErrExists)

	// Loser must not have overwritten the winner.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}

func TestCreateUnique_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.json")

	require.NoError(t, CreateUnique(path, []byte("x")))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestCreateUnique_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")

	require.NoError(t, CreateUnique(path, []byte("first")))
	_ = CreateUnique(path, []byte("second")) // loses, must clean up

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"),
			"leftover temp file %s", e.Name())
	}
}

func TestCreateUnique_ConcurrentOneWinner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	const goroutines = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	losses := 0

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(idx int) {
			defer wg.Done()
			err := CreateUnique(path, []byte{byte(idx)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, ErrExists):
				losses++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, goroutines-1, losses)
}

// --- Replace tests ---

func TestReplace_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")

	require.NoError(t, Replace(path, []byte("content")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestReplace_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")

	require.NoError(t, Replace(path, []byte("old")))
	require.NoError(t, Replace(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestReplace_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")

	require.NoError(t, Replace(path, []byte("one")))
	require.NoError(t, Replace(path, []byte("two")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
