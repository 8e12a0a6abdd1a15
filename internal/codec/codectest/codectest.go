// Package codectest provides conformance checks shared by codec implementations.
package codectest

import (
	"bytes"
	"io"
	"testing"

	"github.com/discochess/datutils/internal/codec"
)

// Compress runs data through c's writer and returns the output.
func Compress(t *testing.T, c codec.Codec, data []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	writer, err := c.Writer(&compressed)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return compressed.Bytes()
}

// Decompress reads all of compressed through c's reader.
func Decompress(c codec.Codec, compressed []byte) ([]byte, error) {
	reader, err := c.Reader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// Run checks the behaviour every codec must share: round trips of empty,
// small and large inputs, and that Close on the writer leaves the
// destination open.
func Run(t *testing.T, c codec.Codec) {
	t.Helper()

	inputs := map[string][]byte{
		"empty": {},
		"small": []byte("Hello, World! This is test data for compression."),
		"large": bytes.Repeat([]byte("ABCDEFGHIJ"), 10000), // 100KB of repetitive data
	}
	for name, original := range inputs {
		t.Run("RoundTrip_"+name, func(t *testing.T) {
			compressed := Compress(t, c, original)
			decompressed, err := Decompress(c, compressed)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if !bytes.Equal(decompressed, original) {
				t.Errorf("Round-trip failed: got %d bytes, want %d bytes", len(decompressed), len(original))
			}
		})
	}

	t.Run("WriterCloseKeepsDestinationOpen", func(t *testing.T) {
		dst := &closeRecorder{}
		writer, err := c.Writer(dst)
		if err != nil {
			t.Fatalf("Writer() error = %v", err)
		}
		if _, err := writer.Write([]byte("payload")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if dst.closed {
			t.Error("Writer.Close() closed the underlying writer")
		}
	})
}

// RunTruncation checks that every non-empty proper prefix of a compressed
// stream fails to decompress. Only meaningful for codecs with framing.
func RunTruncation(t *testing.T, c codec.Codec) {
	t.Helper()

	original := bytes.Repeat([]byte("truncation test payload 0123456789\x00\x00\x00\x00"), 64)
	compressed := Compress(t, c, original)

	for cut := 1; cut < len(compressed); cut++ {
		truncated := compressed[:len(compressed)-cut]
		got, err := Decompress(c, truncated)
		if err == nil {
			t.Fatalf("Decompress() with %d trailing bytes removed succeeded (%d bytes), want error", cut, len(got))
		}
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}
