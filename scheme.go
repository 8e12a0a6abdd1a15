package datutils

import (
	"fmt"
	"path/filepath"

	"github.com/discochess/datutils/internal/codec"
	"github.com/discochess/datutils/internal/codec/gzipcodec"
	"github.com/discochess/datutils/internal/codec/lz4codec"
	"github.com/discochess/datutils/internal/codec/noopcodec"
	"github.com/discochess/datutils/internal/codec/xzcodec"
	"github.com/discochess/datutils/internal/codec/zstdcodec"
)

// Scheme identifies the compression applied on top of the envelope.
type Scheme uint8

const (
	// SchemeNone stores the bare envelope.
	SchemeNone Scheme = iota
	// SchemeLZ4 uses the LZ4 frame format.
	SchemeLZ4
	// SchemeZstd uses Zstandard at the library default level.
	SchemeZstd
	// SchemeGzip uses gzip at the default compression level.
	SchemeGzip
	// SchemeXZ uses xz (LZMA2) with preset 6 settings.
	SchemeXZ
)

var schemes = [...]Scheme{SchemeNone, SchemeLZ4, SchemeZstd, SchemeGzip, SchemeXZ}

// Schemes returns every scheme in declaration order. The slice is a
// fresh copy on each call.
func Schemes() []Scheme {
	out := schemes
	return out[:]
}

// Classify returns the scheme selected by the suffix of path: the
// characters after the last '.' of the final path element, matched
// exactly and case-sensitively. Unknown or missing suffixes select
// SchemeNone.
//
// A name that is only a suffix, such as ".gz", counts as having that
// suffix and selects gzip, unlike path libraries that treat a leading
// dot as part of a hidden file name with no extension.
func Classify(path string) Scheme {
	switch filepath.Ext(path) {
	case ".lz4":
		return SchemeLZ4
	case ".zstd":
		return SchemeZstd
	case ".gz":
		return SchemeGzip
	case ".xz":
		return SchemeXZ
	default:
		return SchemeNone
	}
}

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeNone:
		return "none"
	case SchemeLZ4:
		return "lz4"
	case SchemeZstd:
		return "zstd"
	case SchemeGzip:
		return "gzip"
	case SchemeXZ:
		return "xz"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Extension returns the path suffix, without the dot, that selects s.
// SchemeNone has no suffix.
func (s Scheme) Extension() string {
	return s.codec().Extension()
}

// ParseScheme parses a scheme from its String form.
func ParseScheme(name string) (Scheme, error) {
	for _, s := range schemes {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// codec returns the compression adapter for s. Unknown values fall back
// to no compression; options reject them before they get here.
func (s Scheme) codec() codec.Codec {
	switch s {
	case SchemeLZ4:
		return lz4codec.New()
	case SchemeZstd:
		return zstdcodec.New()
	case SchemeGzip:
		return gzipcodec.New()
	case SchemeXZ:
		return xzcodec.New()
	default:
		return noopcodec.New()
	}
}

func (s Scheme) valid() bool {
	return s <= SchemeXZ
}
