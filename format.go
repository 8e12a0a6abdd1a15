package datutils

import (
	"fmt"

	"github.com/discochess/datutils/internal/envelope"
	"github.com/discochess/datutils/internal/envelope/cborformat"
	"github.com/discochess/datutils/internal/envelope/msgpackformat"
)

// Format identifies the binary encoding of the envelope.
type Format uint8

const (
	// FormatMsgpack is MessagePack with structs encoded as maps keyed by
	// field name. It is the default.
	FormatMsgpack Format = iota
	// FormatCBOR is CBOR with core deterministic encoding.
	FormatCBOR
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// ParseFormat parses a format from its String form.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "msgpack":
		return FormatMsgpack, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

func (f Format) envelope() envelope.Format {
	if f == FormatCBOR {
		return cborformat.New()
	}
	return msgpackformat.New()
}

func (f Format) valid() bool {
	return f <= FormatCBOR
}
