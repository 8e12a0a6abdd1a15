// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Operation counts.
	MetricSaves      = "datutils_saves_total"
	MetricLoads      = "datutils_loads_total"
	MetricSaveErrors = "datutils_save_errors_total"
	MetricLoadErrors = "datutils_load_errors_total"

	// File bytes, after compression.
	MetricBytesWritten = "datutils_bytes_written_total"
	MetricBytesRead    = "datutils_bytes_read_total"

	// Latencies.
	MetricSaveSeconds = "datutils_save_seconds"
	MetricLoadSeconds = "datutils_load_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
