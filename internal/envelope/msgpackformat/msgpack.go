// Package msgpackformat encodes values as MessagePack with named fields.
//
// Structs are written as maps keyed by field name rather than as arrays,
// so files stay readable by other MessagePack decoders. Field names come
// from `msgpack` tags, then `json` tags, then the Go field name.
package msgpackformat

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/discochess/datutils/internal/envelope"
)

// Compile-time check that Format implements envelope.Format.
var _ envelope.Format = (*Format)(nil)

const name = "msgpack"

// Format implements MessagePack encoding.
type Format struct{}

// New returns a new MessagePack format.
func New() *Format {
	return &Format{}
}

// Name returns "msgpack".
func (f *Format) Name() string {
	return name
}

// Encode writes v to w.
func (f *Format) Encode(w io.Writer, v any) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Decode reads one value from r into v.
//
// The raw value is read first so that structural damage and a mismatch
// with v's type are reported as different errors.
func (f *Format) Decode(r io.Reader, v any) error {
	br := bufio.NewReader(r)
	raw, err := msgpack.NewDecoder(br).DecodeRaw()
	if err != nil {
		return envelope.ReadError(name, err)
	}

	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.SetCustomStructTag("json")
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(v); err != nil {
		return envelope.MismatchError(name, err)
	}
	return envelope.ExpectEOF(name, br)
}
