package storage

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// maxDecompressedSize caps blob decompression. Playlist envelopes are
// small; anything past this is corruption or a decompression bomb.
const maxDecompressedSize = 64 << 20

func compressGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("storage: gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("storage: gzip close: %w", err)
	}
	return buf.Bytes(), nil
}

func decompressGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, maxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	if len(out) > maxDecompressedSize {
		return nil, ErrDecompressedTooLarge
	}
	return out, nil
}
