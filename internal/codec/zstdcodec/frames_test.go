package zstdcodec

import (
	"bytes"
	"testing"

	"github.com/discochess/datutils/internal/codec/codectest"
)

func walk(data []byte) *frameWalker {
	w := newFrameWalker()
	w.Write(data)
	return w
}

func TestFrameWalker_Empty(t *testing.T) {
	if !walk(nil).complete() {
		t.Error("empty stream should be complete")
	}
}

func TestFrameWalker_CompleteOnlyAtFrameEnd(t *testing.T) {
	compressed := codectest.Compress(t, New(), bytes.Repeat([]byte("frame walker "), 500))

	for n := 1; n < len(compressed); n++ {
		if walk(compressed[:n]).complete() {
			t.Fatalf("prefix of %d/%d bytes reported complete", n, len(compressed))
		}
	}
	if !walk(compressed).complete() {
		t.Error("full frame not reported complete")
	}
}

func TestFrameWalker_ByteAtATime(t *testing.T) {
	first := codectest.Compress(t, New(), []byte("first frame "))
	second := codectest.Compress(t, New(), []byte("second frame"))
	stream := append(append([]byte{}, first...), second...)

	w := newFrameWalker()
	for i, b := range stream {
		w.Write([]byte{b})
		done := i+1 == len(first) || i+1 == len(stream)
		if got := w.complete(); got != done {
			t.Fatalf("after %d bytes complete() = %v, want %v", i+1, got, done)
		}
	}
}

func TestFrameWalker_SkippableFrame(t *testing.T) {
	skippable := []byte{0x50, 0x2a, 0x4d, 0x18, 0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c'}
	frame := codectest.Compress(t, New(), []byte("payload"))
	stream := append(append([]byte{}, skippable...), frame...)

	if !walk(stream).complete() {
		t.Error("stream with skippable frame not reported complete")
	}
	if walk(stream[:len(skippable)-1]).complete() {
		t.Error("cut skippable frame reported complete")
	}
}

func TestFrameWalker_InvalidMagic(t *testing.T) {
	if walk([]byte("not zstd")).complete() {
		t.Error("foreign data reported complete")
	}
}
