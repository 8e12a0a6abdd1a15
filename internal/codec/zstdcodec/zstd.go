// Package zstdcodec provides a zstd compression codec.
package zstdcodec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/discochess/datutils/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zstd compression at the library default level.
type Codec struct{}

// New returns a new zstd codec.
func New() *Codec {
	return &Codec{}
}

// Reader wraps r to decompress zstd data.
// Close must be called to release the decoder.
//
// The input may hold several concatenated frames. The reader follows the
// frame layout of everything it consumes and reports a stream that ends
// inside a frame, including one cut right before its content checksum,
// which the decoder alone would accept.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	frames := newFrameWalker()
	decoder, err := zstd.NewReader(io.TeeReader(r, frames), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	verify := func() error {
		if !frames.complete() {
			return fmt.Errorf("zstd: %w", codec.ErrMissingTrailer)
		}
		return nil
	}
	closeDecoder := func() error {
		decoder.Close()
		return nil
	}
	return codec.NewVerifyingReader(decoder, nil, verify, closeDecoder), nil
}

// Writer wraps w to compress data with zstd.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderCRC(true),
	)
}

// Extension returns "zstd".
func (c *Codec) Extension() string {
	return "zstd"
}
