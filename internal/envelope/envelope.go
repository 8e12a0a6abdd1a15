// Package envelope defines the self-describing binary encodings a value is
// serialized to before it reaches the compression layer.
package envelope

import (
	"errors"
	"fmt"
	"io"
)

// Decode failures. Every error returned by Format.Decode matches exactly
// one of these with errors.Is.
var (
	// ErrTruncated indicates the input ended in the middle of a value.
	ErrTruncated = errors.New("envelope: truncated input")

	// ErrMalformed indicates the input is not a well-formed encoding.
	ErrMalformed = errors.New("envelope: malformed input")

	// ErrTypeMismatch indicates a well-formed value that cannot be stored
	// in the requested target type.
	ErrTypeMismatch = errors.New("envelope: value does not match target type")

	// ErrTrailingData indicates bytes after the single encoded value.
	ErrTrailingData = errors.New("envelope: trailing data after value")
)

// Format is a structured binary encoding that keeps field names.
type Format interface {
	// Name returns the format identifier (e.g. "msgpack").
	Name() string

	// Encode writes v to w as a single value.
	Encode(w io.Writer, v any) error

	// Decode reads exactly one value from r into v, which must be a
	// non-nil pointer. r must be exhausted afterwards.
	Decode(r io.Reader, v any) error
}

// ReadError classifies an error raised while reading the raw structure
// of a value: running out of input is ErrTruncated, anything else is
// ErrMalformed.
func ReadError(format string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w: %w", format, ErrTruncated, err)
	}
	return fmt.Errorf("%s: %w: %w", format, ErrMalformed, err)
}

// MismatchError wraps an error raised while mapping a well-formed value
// onto its target type.
func MismatchError(format string, err error) error {
	return fmt.Errorf("%s: %w: %w", format, ErrTypeMismatch, err)
}

// ExpectEOF returns nil if r has no bytes left, ErrTrailingData if it
// does, and the read error otherwise. Reading to the end also lets a
// decompressor check its own trailer.
func ExpectEOF(format string, r io.Reader) error {
	var b [1]byte
	n, err := io.ReadFull(r, b[:])
	switch {
	case n > 0:
		return fmt.Errorf("%s: %w", format, ErrTrailingData)
	case err == io.EOF:
		return nil
	default:
		return fmt.Errorf("%s: %w: %w", format, ErrMalformed, err)
	}
}
