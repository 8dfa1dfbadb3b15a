// Package audit keeps an append-only log of revocation events in an
// embedded bbolt database. The log is best-effort operational history:
// a failed append never fails the revoke that produced it.
package audit

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var revocationsBucket = []byte("revocations")

// Event is one recorded revocation.
type Event struct {
	ID       string    `json:"id"`
	ShareID  string    `json:"shareId"`
	BlobHash string    `json:"blobHash"`
	// BlobCollected is true when the revoke also garbage-collected the
	// blob (last active reference).
	BlobCollected bool      `json:"blobCollected"`
	At            time.Time `json:"at"`
}

// Log is an append-only revocation journal.
type Log struct {
	db *bolt.DB
}

// Open opens (or creates) the audit database at path.
func Open(path string) (*Log, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(revocationsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit: init bucket: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the underlying database.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}

// Record appends an event. ID and At are filled if unset. Keys are the
// bucket sequence number, so iteration order is append order.
func (l *Log) Record(ev Event) error {
	if l == nil {
		return nil
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(revocationsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("audit: next sequence: %w", err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		value, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("audit: encode event: %w", err)
		}
		return b.Put(key, value)
	})
}

// Events returns recorded events, oldest first. limit bounds the result
// (0 means all).
func (l *Log) Events(limit int) ([]Event, error) {
	if l == nil {
		return nil, nil
	}
	var events []Event
	err := l.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(revocationsBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var ev Event
			if err := json.Unmarshal(v, &ev); err != nil {
				return fmt.Errorf("audit: decode event: %w", err)
			}
			events = append(events, ev)
			if limit > 0 && len(events) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
