package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/datutils"
	"github.com/discochess/datutils/internal/config"
	promstats "github.com/discochess/datutils/internal/stats/prometheus"
)

var (
	// Global flags.
	configPath string
	formatName string
	verbose    bool
	metrics    bool

	// Set up by setup before any command runs.
	cfg      *config.Config
	client   *datutils.Client
	logger   *zap.Logger
	registry *prometheus.Registry
)

var rootCmd = &cobra.Command{
	Use:   "datutils",
	Short: "Inspect and convert compressed MessagePack data files",
	Long: `datutils works with files written by the datutils library: a
MessagePack (or CBOR) envelope, compressed according to the file suffix
(.lz4, .zstd, .gz, .xz, anything else is stored uncompressed).

Examples:
  # Print a file as JSON
  datutils inspect results.msg.zstd

  # Recompress a file
  datutils convert results.msg.gz results.msg.xz

  # Check that files decode
  datutils verify data/*.msg.lz4

  # Show sizes and compression ratios
  datutils info data/*`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "msgpack", "envelope format (msgpack or cbor)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&metrics, "metrics", false, "print collected metrics on exit")
}

// setup loads the configuration, applies flags set on the command line
// over it and builds the shared client.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = formatName
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("metrics") {
		cfg.Metrics = metrics
	}
	if flags.Changed("output") {
		cfg.Output = outputFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = zap.NewNop()
	if cfg.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
	}

	opts := append(cfg.Options(), datutils.WithLogger(logger))
	if cfg.Metrics {
		registry = prometheus.NewRegistry()
		opts = append(opts, datutils.WithStats(promstats.New(registry)))
	}
	client = datutils.New(opts...)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if registry != nil {
		if err := printMetrics(cmd, registry); err != nil {
			return err
		}
	}
	_ = logger.Sync()
	return nil
}

func printMetrics(cmd *cobra.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	out := cmd.ErrOrStderr()
	for _, f := range families {
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "%-32s %.0f\n", f.GetName(), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(out, "%-32s count=%d sum=%.6fs\n", f.GetName(), h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
