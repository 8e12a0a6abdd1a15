package zstdcodec

import (
	"bytes"
	"testing"

	"github.com/discochess/datutils/internal/codec/codectest"
)

func TestCodec_Extension(t *testing.T) {
	if got := New().Extension(); got != "zstd" {
		t.Errorf("Extension() = %q, want %q", got, "zstd")
	}
}

func TestCodec_Conformance(t *testing.T) {
	codectest.Run(t, New())
}

func TestCodec_Truncation(t *testing.T) {
	codectest.RunTruncation(t, New())
}

func TestCodec_MissingChecksum(t *testing.T) {
	original := bytes.Repeat([]byte{0}, 512)
	compressed := codectest.Compress(t, New(), original)

	// Drop exactly the 4-byte content checksum.
	_, err := codectest.Decompress(New(), compressed[:len(compressed)-4])
	if err == nil {
		t.Fatal("Decompress() without checksum succeeded, want error")
	}
}

func TestCodec_MultipleFrames(t *testing.T) {
	first := codectest.Compress(t, New(), []byte("first frame "))
	second := codectest.Compress(t, New(), []byte("second frame"))
	stream := append(append([]byte{}, first...), second...)

	got, err := codectest.Decompress(New(), stream)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if want := "first frame second frame"; string(got) != want {
		t.Errorf("Decompress() = %q, want %q", got, want)
	}

	// Cutting the second frame anywhere, including its checksum, must fail.
	for cut := 1; cut < len(second); cut++ {
		if _, err := codectest.Decompress(New(), stream[:len(stream)-cut]); err == nil {
			t.Fatalf("Decompress() with %d trailing bytes removed succeeded, want error", cut)
		}
	}
}

func TestCodec_Reader_InvalidData(t *testing.T) {
	_, err := codectest.Decompress(New(), []byte("not zstd data at all"))
	if err == nil {
		t.Error("Decompress() expected error for invalid zstd data, got nil")
	}
}

func TestCodec_FrameMagic(t *testing.T) {
	compressed := codectest.Compress(t, New(), []byte("payload"))
	magic := []byte{0x28, 0xb5, 0x2f, 0xfd}
	if !bytes.HasPrefix(compressed, magic) {
		t.Errorf("frame starts with % x, want % x", compressed[:4], magic)
	}
}
