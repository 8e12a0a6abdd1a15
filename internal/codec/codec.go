// Package codec provides the streaming compression layer that sits between
// a file and its serialized envelope.
package codec

import "io"

// Codec wraps byte streams with a compression format.
type Codec interface {
	// Reader wraps r so that reads return decompressed data.
	// Corrupt or truncated input surfaces as an error from Read,
	// at the latest when the stream reaches its end.
	Reader(r io.Reader) (io.ReadCloser, error)

	// Writer wraps w so that writes are compressed before reaching w.
	// Close finalizes the stream (footer, checksum, end mark) and must be
	// called before w itself is flushed or closed. Close never closes w.
	Writer(w io.Writer) (io.WriteCloser, error)

	// Extension returns the file suffix without the dot (e.g. "zstd", "gz").
	// Returns empty string for no compression.
	Extension() string
}
