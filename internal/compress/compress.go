// Package compress provides gzip helpers and HTTP middleware for transparent
// request/response compression between the UI shell and the key service.
package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Compress gzips data.
func Compress(data []byte) ([]byte, error) {
	var b bytes.Buffer
	w := gzPoolWriter.Get().(*gzip.Writer)
	defer gzPoolWriter.Put(w)
	w.Reset(&b)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip write: %w", err)
	}
	// без Close хвост потока не попадёт в буфер
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip close: %w", err)
	}
	return b.Bytes(), nil
}

// Decompress gunzips data.
func Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	return out, nil
}
