package storage

import (
	"encoding/json"
	"fmt"

	"github.com/playshareorg/libplayshare-go/envelope"
)

// RecordVersion is the current on-disk blob record version.
const RecordVersion = 1

// blobRecord is the self-describing on-disk form of a blob (before
// compression). Checksum always equals the blob's own address.
type blobRecord struct {
	Version   int                `json:"version"`
	Encrypted *envelope.Envelope `json:"encrypted"`
	Checksum  string             `json:"checksum"`
}

// versionProbe discriminates record versions at parse time, so future
// formats are rejected cleanly instead of being field-probed.
type versionProbe struct {
	Version int `json:"version"`
}

func encodeRecord(hash string, env *envelope.Envelope) ([]byte, error) {
	data, err := json.Marshal(blobRecord{
		Version:   RecordVersion,
		Encrypted: env,
		Checksum:  hash,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: encode blob record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*blobRecord, error) {
	var probe versionProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}

	switch probe.Version {
	case RecordVersion:
		var rec blobRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
		}
		return &rec, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, probe.Version)
	}
}
