package datutils

import (
	"go.uber.org/zap"

	"github.com/discochess/datutils/internal/stats"
)

// Option configures a Client or a single Save/Load call.
type Option interface {
	apply(*options)
}

// options holds the client configuration.
type options struct {
	scheme    Scheme
	hasScheme bool
	format    Format
	stats     stats.Collector
	logger    *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		format: FormatMsgpack,
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithScheme forces the compression scheme instead of deriving it from
// the path suffix. Unknown schemes are ignored.
func WithScheme(s Scheme) Option {
	return optionFunc(func(o *options) {
		if s.valid() {
			o.scheme = s
			o.hasScheme = true
		}
	})
}

// WithFormat sets the envelope encoding.
// If not set, MessagePack is used. Unknown formats are ignored.
func WithFormat(f Format) Option {
	return optionFunc(func(o *options) {
		if f.valid() {
			o.format = f
		}
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		if c != nil {
			o.stats = c
		}
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}
