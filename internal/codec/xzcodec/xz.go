// Package xzcodec provides an xz (LZMA2) compression codec.
package xzcodec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/discochess/datutils/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// DictCap is the LZMA2 dictionary capacity used by xz preset 6.
const DictCap = 8 << 20

const footerSize = 12

// Codec implements xz compression with preset 6 settings.
type Codec struct{}

// New returns a new xz codec.
func New() *Codec {
	return &Codec{}
}

// Reader wraps r to decompress xz data.
// The stream header is read immediately, so an empty or foreign stream fails here.
//
// The stream must end with its footer. A stream cut off right after a
// block would otherwise look complete to the decoder.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	src := codec.NewSourceTracker(r)
	xr, err := xz.NewReader(src)
	if err != nil {
		return nil, err
	}
	verify := func() error {
		if !hasFooter(src.Tail(footerSize)) {
			return fmt.Errorf("xz: %w", codec.ErrMissingTrailer)
		}
		return nil
	}
	return codec.NewVerifyingReader(xr, nil, verify, nil), nil
}

// hasFooter reports whether tail is a well-formed stream footer:
// CRC32 of the next six bytes, backward size, flags, then "YZ".
func hasFooter(tail []byte) bool {
	if len(tail) != footerSize || tail[10] != 'Y' || tail[11] != 'Z' {
		return false
	}
	return crc32.ChecksumIEEE(tail[4:10]) == binary.LittleEndian.Uint32(tail[:4])
}

// Writer wraps w to compress data with xz.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return xz.WriterConfig{DictCap: DictCap}.NewWriter(w)
}

// Extension returns "xz".
func (c *Codec) Extension() string {
	return "xz"
}
