// Package cborformat encodes values as CBOR (RFC 8949).
package cborformat

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/discochess/datutils/internal/envelope"
)

// Compile-time check that Format implements envelope.Format.
var _ envelope.Format = (*Format)(nil)

const name = "cbor"

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer and float encodings that keep the value exact.
var encMode cbor.EncMode

// decMode decodes untyped maps as map[string]any and ignores unknown
// struct fields.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cborformat: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cborformat: CBOR decoder initialization failed: " + err.Error())
	}
}

// Format implements CBOR encoding.
type Format struct{}

// New returns a new CBOR format.
func New() *Format {
	return &Format{}
}

// Name returns "cbor".
func (f *Format) Name() string {
	return name
}

// Encode writes v to w.
func (f *Format) Encode(w io.Writer, v any) error {
	if err := encMode.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Decode reads one value from r into v.
func (f *Format) Decode(r io.Reader, v any) error {
	dec := decMode.NewDecoder(r)

	var raw cbor.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return envelope.ReadError(name, err)
	}
	if err := decMode.Unmarshal(raw, v); err != nil {
		return envelope.MismatchError(name, err)
	}
	return envelope.ExpectEOF(name, io.MultiReader(dec.Buffered(), r))
}
