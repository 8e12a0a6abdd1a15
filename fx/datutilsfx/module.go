// Package datutilsfx provides an fx module for a datutils client.
package datutilsfx

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/datutils"
	"github.com/discochess/datutils/internal/stats"
	"github.com/discochess/datutils/internal/stats/logger"
	promstats "github.com/discochess/datutils/internal/stats/prometheus"
)

const optionGroup = `group:"datutils.options"`

// Module provides a *datutils.Client.
// Requires a *zap.Logger to be provided. If a prometheus.Registerer is
// provided, metrics are exported to it; otherwise they are logged.
var Module = fx.Module("datutils",
	fx.Provide(
		newStatsCollector,
		newClient,
	),
)

// WithOption contributes a client option to Module.
func WithOption(opt datutils.Option) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func() datutils.Option { return opt },
			fx.ResultTags(optionGroup),
		),
	)
}

// StatsParams holds dependencies for creating the stats collector.
type StatsParams struct {
	fx.In

	Logger     *zap.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

func newStatsCollector(p StatsParams) stats.Collector {
	if p.Registerer != nil {
		return promstats.New(p.Registerer)
	}
	return logger.New(p.Logger.Named("datutils.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Options   []datutils.Option `group:"datutils.options"`
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *datutils.Client
}

func newClient(p Params) Result {
	opts := []datutils.Option{
		datutils.WithStats(p.Collector),
		datutils.WithLogger(p.Logger.Named("datutils")),
	}
	opts = append(opts, p.Options...)

	return Result{Client: datutils.New(opts...)}
}
