package lz4codec

import (
	"bytes"
	"testing"

	"github.com/discochess/datutils/internal/codec/codectest"
)

func TestCodec_Extension(t *testing.T) {
	if got := New().Extension(); got != "lz4" {
		t.Errorf("Extension() = %q, want %q", got, "lz4")
	}
}

func TestCodec_Conformance(t *testing.T) {
	codectest.Run(t, New())
}

func TestCodec_Truncation(t *testing.T) {
	codectest.RunTruncation(t, New())
}

func TestCodec_MissingTrailer(t *testing.T) {
	// Data ending in zero bytes makes a cut-off frame look like an end mark.
	original := append(bytes.Repeat([]byte("lz4 block "), 50), 0, 0, 0, 0, 0, 0, 0, 0)
	compressed := codectest.Compress(t, New(), original)

	for _, cut := range []int{4, 8} {
		got, err := codectest.Decompress(New(), compressed[:len(compressed)-cut])
		if err == nil {
			t.Errorf("Decompress() with %d bytes cut succeeded (%d bytes), want error", cut, len(got))
		}
	}
}

func TestCodec_FrameMagic(t *testing.T) {
	compressed := codectest.Compress(t, New(), []byte("payload"))
	magic := []byte{0x04, 0x22, 0x4d, 0x18}
	if !bytes.HasPrefix(compressed, magic) {
		t.Errorf("frame starts with % x, want % x", compressed[:4], magic)
	}
	if compressed[4]&flagContentChecksum == 0 {
		t.Error("frame descriptor does not declare a content checksum")
	}
}

func TestCodec_Reader_InvalidData(t *testing.T) {
	_, err := codectest.Decompress(New(), []byte("not lz4 data at all"))
	if err == nil {
		t.Error("Decompress() expected error for invalid lz4 data, got nil")
	}
}
