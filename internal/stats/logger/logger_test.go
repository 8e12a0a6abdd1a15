package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/datutils/internal/stats"
)

func TestCollector_LogsUpdates(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricSaves, 2)
	c.ObserveHistogram(stats.MetricSaveSeconds, 0.25)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}

	counter := entries[0].ContextMap()
	if entries[0].Message != "counter" || counter["metric"] != stats.MetricSaves || counter["delta"] != int64(2) {
		t.Errorf("counter entry = %q %v", entries[0].Message, counter)
	}

	histogram := entries[1].ContextMap()
	if entries[1].Message != "histogram" || histogram["metric"] != stats.MetricSaveSeconds || histogram["value"] != 0.25 {
		t.Errorf("histogram entry = %q %v", entries[1].Message, histogram)
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	// Must not panic.
	c.IncCounter(stats.MetricLoads, 1)
	c.ObserveHistogram(stats.MetricLoadSeconds, 1)
}
