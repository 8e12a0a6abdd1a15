package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestReadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"eof", io.EOF, ErrTruncated},
		{"unexpected eof", io.ErrUnexpectedEOF, ErrTruncated},
		{"wrapped eof", fmt.Errorf("reading: %w", io.ErrUnexpectedEOF), ErrTruncated},
		{"other", errors.New("invalid code"), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadError("test", tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("ReadError() = %v, want %v", got, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("ReadError() = %v, does not wrap %v", got, tt.err)
			}
		})
	}
}

func TestMismatchError(t *testing.T) {
	cause := errors.New("cannot decode string into int")
	err := MismatchError("test", cause)
	if !errors.Is(err, ErrTypeMismatch) || !errors.Is(err, cause) {
		t.Errorf("MismatchError() = %v", err)
	}
}

func TestExpectEOF(t *testing.T) {
	if err := ExpectEOF("test", bytes.NewReader(nil)); err != nil {
		t.Errorf("ExpectEOF(empty) error = %v", err)
	}
	if err := ExpectEOF("test", bytes.NewReader([]byte{0})); !errors.Is(err, ErrTrailingData) {
		t.Errorf("ExpectEOF(trailing) error = %v, want ErrTrailingData", err)
	}

	cause := errors.New("checksum mismatch")
	err := ExpectEOF("test", io.MultiReader(failingReader{cause}))
	if !errors.Is(err, cause) {
		t.Errorf("ExpectEOF(failing) error = %v, want %v", err, cause)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
