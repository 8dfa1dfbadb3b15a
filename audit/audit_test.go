package audit

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestRecordAndEvents(t *testing.T) {
	log := newTestLog(t)

	require.NoError(t, log.Record(Event{ShareID: "abc123", BlobHash: strings.Repeat("a", 64)}))
	require.NoError(t, log.Record(Event{ShareID: "def456", BlobHash: strings.Repeat("b", 64), BlobCollected: true}))

	events, err := log.Events(0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Append order preserved.
	assert.Equal(t, "abc123", events[0].ShareID)
	assert.Equal(t, "def456", events[1].ShareID)
	assert.True(t, events[1].BlobCollected)

	// ID and timestamp auto-filled.
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].At.IsZero())
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestEvents_Limit(t *testing.T) {
	log := newTestLog(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, log.Record(Event{ShareID: "id"}))
	}

	events, err := log.Events(3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestEvents_Empty(t *testing.T) {
	log := newTestLog(t)
	events, err := log.Events(0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNilLog(t *testing.T) {
	var log *Log
	assert.NoError(t, log.Record(Event{ShareID: "x"}))
	events, err := log.Events(0)
	assert.NoError(t, err)
	assert.Nil(t, events)
	assert.NoError(t, log.Close())
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	log, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, log.Record(Event{ShareID: "persisted"}))
	require.NoError(t, log.Close())

	log, err = Open(path)
	require.NoError(t, err)
	defer log.Close()

	events, err := log.Events(0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "persisted", events[0].ShareID)
}
