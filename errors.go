package datutils

import (
	"errors"
	"fmt"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrIO matches failures to create, open, read, write or sync the file.
	ErrIO = errors.New("datutils: i/o error")

	// ErrCompression matches codec failures: a corrupt or truncated
	// compressed stream, or a failure to finalize one.
	ErrCompression = errors.New("datutils: compression error")

	// ErrSerialization matches values that cannot be encoded and
	// envelopes that cannot be decoded into the requested type.
	ErrSerialization = errors.New("datutils: serialization error")

	// ErrUnknownScheme indicates a scheme name that ParseScheme does not know.
	ErrUnknownScheme = errors.New("datutils: unknown compression scheme")

	// ErrUnknownFormat indicates a format name that ParseFormat does not know.
	ErrUnknownFormat = errors.New("datutils: unknown envelope format")
)

// Kind classifies an Error.
type Kind uint8

const (
	// KindIO covers file system failures.
	KindIO Kind = iota + 1
	// KindCompression covers codec failures.
	KindCompression
	// KindSerialization covers envelope encode and decode failures.
	KindSerialization
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindCompression:
		return "compression"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// sentinel returns the package error matched by errors.Is for k.
func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindCompression:
		return ErrCompression
	case KindSerialization:
		return ErrSerialization
	default:
		return nil
	}
}

// Error describes a failed file operation.
//
// errors.Is(err, ErrIO), ErrCompression and ErrSerialization match on
// Kind; the underlying cause stays reachable through Unwrap.
type Error struct {
	Op     string // "save", "load", "read" or "recompress"
	Path   string
	Scheme Scheme
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("datutils: %s %s (%s): %s: %v", e.Op, e.Path, e.Scheme, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
