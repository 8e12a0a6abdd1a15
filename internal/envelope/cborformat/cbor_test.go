package cborformat

import (
	"bytes"
	"errors"
	"testing"

	"github.com/discochess/datutils/internal/envelope"
	"github.com/discochess/datutils/internal/envelope/envelopetest"
)

func TestFormat_Name(t *testing.T) {
	if got := New().Name(); got != "cbor" {
		t.Errorf("Name() = %q, want %q", got, "cbor")
	}
}

func TestFormat_Conformance(t *testing.T) {
	envelopetest.Run(t, New())
}

func TestFormat_Deterministic(t *testing.T) {
	value := map[string]any{"z": 1, "a": []float64{1, 2}, "m": "x"}
	first := envelopetest.Encode(t, New(), value)
	second := envelopetest.Encode(t, New(), value)
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestFormat_Malformed(t *testing.T) {
	// 0xff "break" outside an indefinite-length item is not well-formed.
	var got any
	err := New().Decode(bytes.NewReader([]byte{0xff}), &got)
	if !errors.Is(err, envelope.ErrMalformed) {
		t.Errorf("Decode() error = %v, want ErrMalformed", err)
	}
}
