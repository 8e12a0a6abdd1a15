package codec

import (
	"errors"
	"io"
)

// ErrMissingTrailer indicates a compressed stream ended before its
// end-of-stream marker or checksum. Some decoders report such a stream
// as a clean io.EOF when it stops on a block boundary.
var ErrMissingTrailer = errors.New("codec: stream ends before its trailer")

const (
	headSize = 16
	tailSize = 16
)

// SourceTracker records the first and last bytes a decoder pulls from
// its source, so that a codec can check the framing it consumed.
type SourceTracker struct {
	r    io.Reader
	head []byte
	tail [tailSize]byte
	n    int64
}

// NewSourceTracker returns a tracker reading from r.
func NewSourceTracker(r io.Reader) *SourceTracker {
	return &SourceTracker{r: r, head: make([]byte, 0, headSize)}
}

// Read implements io.Reader.
func (t *SourceTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		t.record(p[:n])
	}
	return n, err
}

func (t *SourceTracker) record(p []byte) {
	if len(t.head) < headSize {
		t.head = append(t.head, p[:min(len(p), headSize-len(t.head))]...)
	}
	if len(p) >= tailSize {
		copy(t.tail[:], p[len(p)-tailSize:])
	} else {
		copy(t.tail[:], t.tail[len(p):])
		copy(t.tail[tailSize-len(p):], p)
	}
	t.n += int64(len(p))
}

// Head returns up to the first 16 bytes read from the source.
func (t *SourceTracker) Head() []byte {
	return t.head
}

// Tail returns the last n bytes read from the source, or nil if fewer
// than n bytes have been read. n must not exceed 16.
func (t *SourceTracker) Tail(n int) []byte {
	if n > tailSize || int64(n) > t.n {
		return nil
	}
	return t.tail[tailSize-n:]
}

// Consumed returns the number of bytes read from the source.
func (t *SourceTracker) Consumed() int64 {
	return t.n
}

// verifyingReader copies decompressed bytes into content and runs verify
// once the decoder reports io.EOF.
type verifyingReader struct {
	r       io.Reader
	content io.Writer
	verify  func() error
	close   func() error
	err     error
}

// NewVerifyingReader wraps the decompressed stream r. Every byte read is
// also written to content (typically a running hash). When r reports
// io.EOF, verify is called once and its error, if any, replaces io.EOF
// for this and all later reads. close is called by Close and may be nil.
func NewVerifyingReader(r io.Reader, content io.Writer, verify func() error, close func() error) io.ReadCloser {
	if content == nil {
		content = io.Discard
	}
	return &verifyingReader{r: r, content: content, verify: verify, close: close}
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	if v.err != nil {
		return 0, v.err
	}
	n, err := v.r.Read(p)
	if n > 0 {
		// Hash writers never fail.
		_, _ = v.content.Write(p[:n])
	}
	if err == io.EOF {
		if verr := v.verify(); verr != nil {
			err = verr
		}
	}
	if err != nil {
		v.err = err
	}
	return n, err
}

func (v *verifyingReader) Close() error {
	if v.close == nil {
		return nil
	}
	return v.close()
}
