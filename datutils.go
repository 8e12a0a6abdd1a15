// Package datutils saves Go values to files and loads them back, with the
// compression chosen by the file name suffix.
//
// A value is encoded as a MessagePack (or CBOR) envelope with named fields,
// then compressed according to the suffix of the path:
//
//	.lz4   LZ4 frame
//	.zstd  Zstandard
//	.gz    gzip
//	.xz    xz
//	other  no compression
//
// Example usage:
//
//	type Foo struct {
//	    Bar uint32    `json:"bar"`
//	    Baz []float64 `json:"baz"`
//	}
//
//	if err := datutils.Save("foo.msg.zstd", foo); err != nil {
//	    log.Fatal(err)
//	}
//	foo, err := datutils.Load[Foo]("foo.msg.zstd")
//	if err != nil {
//	    log.Fatal(err)
//	}
package datutils

import (
	"bufio"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/datutils/internal/stats"
)

// Client saves and loads values with a fixed configuration.
// A Client holds no per-call state and is safe for concurrent use on
// different paths. Concurrent access to the same path must be
// serialized by the caller.
type Client struct {
	scheme    Scheme
	hasScheme bool
	format    Format
	stats     stats.Collector
	logger    *zap.Logger
}

// New creates a new Client with the given options.
func New(opts ...Option) *Client {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	return &Client{
		scheme:    cfg.scheme,
		hasScheme: cfg.hasScheme,
		format:    cfg.format,
		stats:     cfg.stats,
		logger:    cfg.logger,
	}
}

// Save encodes value and writes it to path, compressed according to
// the path suffix. Any existing file is truncated.
func Save(path string, value any, opts ...Option) error {
	return New(opts...).Save(path, value)
}

// Load reads path, decompressing according to its suffix, and decodes
// the envelope into a new T.
func Load[T any](path string, opts ...Option) (T, error) {
	return LoadWith[T](New(opts...), path)
}

// LoadWith is Load using the configuration of c.
func LoadWith[T any](c *Client, path string) (T, error) {
	var value T
	if err := c.LoadInto(path, &value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Format returns the envelope format used by this client.
func (c *Client) Format() Format {
	return c.format
}

// SchemeFor returns the scheme the client uses for path.
func (c *Client) SchemeFor(path string) Scheme {
	if c.hasScheme {
		return c.scheme
	}
	return Classify(path)
}

// Save encodes value and writes it to path.
//
// The compression stream is finalized before the file is flushed,
// synced and closed. On failure the file may be left truncated.
func (c *Client) Save(path string, value any) error {
	scheme := c.SchemeFor(path)
	start := time.Now()
	c.stats.IncCounter(stats.MetricSaves, 1)

	format := c.format.envelope()
	n, kind, err := writeStream(path, scheme, KindSerialization, func(w io.Writer) error {
		return format.Encode(w, value)
	})
	if err != nil {
		c.stats.IncCounter(stats.MetricSaveErrors, 1)
		return c.fail("save", path, scheme, kind, err)
	}

	elapsed := time.Since(start)
	c.stats.IncCounter(stats.MetricBytesWritten, n)
	c.stats.ObserveHistogram(stats.MetricSaveSeconds, elapsed.Seconds())
	c.logger.Debug("saved",
		zap.String("path", path),
		zap.Stringer("scheme", scheme),
		zap.Stringer("format", c.format),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

// LoadInto reads path and decodes its envelope into target, which must
// be a non-nil pointer. target is left in an unspecified state on error.
func (c *Client) LoadInto(path string, target any) error {
	scheme := c.SchemeFor(path)
	start := time.Now()
	c.stats.IncCounter(stats.MetricLoads, 1)

	format := c.format.envelope()
	n, kind, err := readStream(path, scheme, func(r io.Reader) error {
		return format.Decode(r, target)
	})
	if err != nil {
		c.stats.IncCounter(stats.MetricLoadErrors, 1)
		return c.fail("load", path, scheme, kind, err)
	}

	elapsed := time.Since(start)
	c.stats.IncCounter(stats.MetricBytesRead, n)
	c.stats.ObserveHistogram(stats.MetricLoadSeconds, elapsed.Seconds())
	c.logger.Debug("loaded",
		zap.String("path", path),
		zap.Stringer("scheme", scheme),
		zap.Stringer("format", c.format),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

// ReadEnvelope returns the decompressed envelope stored at path without
// decoding it.
func (c *Client) ReadEnvelope(path string) ([]byte, error) {
	return c.readEnvelope("read", path, c.SchemeFor(path))
}

// Recompress rewrites the envelope stored at src into dst, changing
// only the compression. src is always classified by its suffix; dst
// uses the client's scheme selection. The envelope is not decoded.
func (c *Client) Recompress(src, dst string) error {
	srcScheme := Classify(src)
	envelope, err := c.readEnvelope("recompress", src, srcScheme)
	if err != nil {
		return err
	}

	dstScheme := c.SchemeFor(dst)
	n, kind, err := writeStream(dst, dstScheme, KindCompression, func(w io.Writer) error {
		_, err := w.Write(envelope)
		return err
	})
	if err != nil {
		return c.fail("recompress", dst, dstScheme, kind, err)
	}

	c.logger.Debug("recompressed",
		zap.String("src", src),
		zap.Stringer("srcScheme", srcScheme),
		zap.String("dst", dst),
		zap.Stringer("dstScheme", dstScheme),
		zap.Int("envelopeBytes", len(envelope)),
		zap.Int64("bytes", n),
	)
	return nil
}

func (c *Client) readEnvelope(op, path string, scheme Scheme) ([]byte, error) {
	var envelope []byte
	_, kind, err := readStream(path, scheme, func(r io.Reader) error {
		var err error
		envelope, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		return nil, c.fail(op, path, scheme, kind, err)
	}
	return envelope, nil
}

func (c *Client) fail(op, path string, scheme Scheme, kind Kind, err error) error {
	c.logger.Debug(op+" failed",
		zap.String("path", path),
		zap.Stringer("scheme", scheme),
		zap.Stringer("kind", kind),
		zap.Error(err),
	)
	return &Error{Op: op, Path: path, Scheme: scheme, Kind: kind, Err: err}
}

// writeStream creates path and hands produce a writer that compresses
// with scheme. Errors from produce are reported as produceKind unless
// the file itself failed underneath. It returns the bytes written to
// the file.
func writeStream(path string, scheme Scheme, produceKind Kind, produce func(io.Writer) error) (int64, Kind, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, KindIO, err
	}
	file := &countingWriter{w: f}
	buf := bufio.NewWriter(file)

	cw, err := scheme.codec().Writer(buf)
	if err != nil {
		f.Close()
		return 0, KindCompression, err
	}

	if err := produce(cw); err != nil {
		cw.Close()
		f.Close()
		if file.err != nil {
			return file.n, KindIO, err
		}
		return file.n, produceKind, err
	}

	// Finalize the codec before anything below it is flushed or closed.
	if err := cw.Close(); err != nil {
		f.Close()
		if file.err != nil {
			return file.n, KindIO, err
		}
		return file.n, KindCompression, err
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return file.n, KindIO, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return file.n, KindIO, err
	}
	if err := f.Close(); err != nil {
		return file.n, KindIO, err
	}
	return file.n, 0, nil
}

// readStream opens path and hands consume the decompressed stream.
// Errors from consume are attributed to the file, then the codec, and
// otherwise to the envelope. It returns the bytes read from the file.
func readStream(path string, scheme Scheme, consume func(io.Reader) error) (int64, Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, KindIO, err
	}
	defer f.Close()

	file := &trackingReader{r: f}
	cr, err := scheme.codec().Reader(bufio.NewReader(file))
	if err != nil {
		if file.err != nil {
			return file.n, KindIO, err
		}
		return file.n, KindCompression, err
	}
	defer cr.Close()

	plain := &trackingReader{r: cr}
	if err := consume(plain); err != nil {
		switch {
		case file.err != nil:
			return file.n, KindIO, err
		case plain.err != nil:
			return file.n, KindCompression, err
		default:
			return file.n, KindSerialization, err
		}
	}
	return file.n, 0, nil
}

// trackingReader counts bytes and remembers the first error other than io.EOF.
type trackingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	t.n += int64(n)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}

// countingWriter counts bytes and remembers the first write error.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}
	return n, err
}
