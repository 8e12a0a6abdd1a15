// Package lz4codec provides an LZ4 frame compression codec.
package lz4codec

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/discochess/datutils/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Content checksum bit of the frame descriptor FLG byte.
const flagContentChecksum = 0x04

// Codec implements LZ4 frame compression with library defaults.
type Codec struct{}

// New returns a new lz4 codec.
func New() *Codec {
	return &Codec{}
}

// Reader wraps r to decompress an LZ4 frame.
//
// pierrec/lz4 accepts a frame that stops on a block boundary, so the
// reader checks that the end mark and, when declared, the content
// checksum were the last bytes read from r.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	src := codec.NewSourceTracker(r)
	zr := lz4.NewReader(src)

	digest := xxHash32.New(0)
	verify := func() error {
		if err := checkTrailer(src, digest); err != nil {
			return fmt.Errorf("lz4: %w", err)
		}
		return nil
	}
	return codec.NewVerifyingReader(zr, digest, verify, nil), nil
}

func checkTrailer(src *codec.SourceTracker, digest hash.Hash32) error {
	head := src.Head()
	if len(head) < 5 {
		return codec.ErrMissingTrailer
	}
	if head[4]&flagContentChecksum == 0 {
		tail := src.Tail(4)
		if tail == nil || binary.LittleEndian.Uint32(tail) != 0 {
			return codec.ErrMissingTrailer
		}
		return nil
	}
	tail := src.Tail(8)
	if tail == nil ||
		binary.LittleEndian.Uint32(tail[:4]) != 0 ||
		binary.LittleEndian.Uint32(tail[4:]) != digest.Sum32() {
		return codec.ErrMissingTrailer
	}
	return nil
}

// Writer wraps w to compress data into an LZ4 frame with a content checksum.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.ChecksumOption(true)); err != nil {
		return nil, err
	}
	return zw, nil
}

// Extension returns "lz4".
func (c *Codec) Extension() string {
	return "lz4"
}
