package noopcodec

import (
	"bytes"
	"testing"

	"github.com/discochess/datutils/internal/codec/codectest"
)

func TestCodec_Extension(t *testing.T) {
	if got := New().Extension(); got != "" {
		t.Errorf("Extension() = %q, want empty", got)
	}
}

func TestCodec_Conformance(t *testing.T) {
	codectest.Run(t, New())
}

func TestCodec_PassThrough(t *testing.T) {
	original := []byte("raw envelope bytes")
	compressed := codectest.Compress(t, New(), original)
	if !bytes.Equal(compressed, original) {
		t.Errorf("Writer() altered data: got %q, want %q", compressed, original)
	}
}
