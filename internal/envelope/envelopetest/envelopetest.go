// Package envelopetest provides conformance checks shared by envelope formats.
package envelopetest

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/discochess/datutils/internal/envelope"
)

// Record is a representative value: named scalars, a numeric vector and
// nested structures.
type Record struct {
	Bar    uint32            `json:"bar"`
	Baz    []float64         `json:"baz"`
	Name   string            `json:"name,omitempty"`
	Tags   map[string]int64  `json:"tags,omitempty"`
	Matrix [][]float64       `json:"matrix,omitempty"`
	Child  *Record           `json:"child,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Linspace returns n evenly spaced values over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Sample returns a populated Record.
func Sample() Record {
	return Record{
		Bar:    1,
		Baz:    Linspace(-1, 1, 10),
		Name:   "sample",
		Tags:   map[string]int64{"a": -7, "b": math.MaxInt64},
		Matrix: [][]float64{{1, 2.5}, {math.SmallestNonzeroFloat64, -0.1}},
		Child:  &Record{Bar: 2, Baz: []float64{math.Pi}},
	}
}

// Encode encodes v with f.
func Encode(t *testing.T, f envelope.Format, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Encode(&buf, v); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

// Run checks the behaviour every format must share.
func Run(t *testing.T, f envelope.Format) {
	t.Helper()

	t.Run("RoundTrip", func(t *testing.T) {
		original := Sample()
		data := Encode(t, f, original)

		var got Record
		if err := f.Decode(bytes.NewReader(data), &got); err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if !reflect.DeepEqual(got, original) {
			t.Errorf("Decode() = %+v, want %+v", got, original)
		}
	})

	t.Run("NamedFields", func(t *testing.T) {
		data := Encode(t, f, Record{Bar: 3})
		for _, field := range []string{"bar", "baz"} {
			if !bytes.Contains(data, []byte(field)) {
				t.Errorf("encoding does not contain field name %q", field)
			}
		}
	})

	t.Run("AdditiveFields", func(t *testing.T) {
		type older struct {
			Bar uint32 `json:"bar"`
		}
		data := Encode(t, f, Sample())

		var got older
		if err := f.Decode(bytes.NewReader(data), &got); err != nil {
			t.Fatalf("Decode() into older type error = %v", err)
		}
		if got.Bar != 1 {
			t.Errorf("Bar = %d, want 1", got.Bar)
		}
	})

	t.Run("Generic", func(t *testing.T) {
		data := Encode(t, f, Record{Bar: 1, Baz: []float64{0.5}})

		var got any
		if err := f.Decode(bytes.NewReader(data), &got); err != nil {
			t.Fatalf("Decode() into any error = %v", err)
		}
		m, ok := got.(map[string]any)
		if !ok {
			t.Fatalf("Decode() into any = %T, want map[string]any", got)
		}
		if _, ok := m["baz"]; !ok {
			t.Errorf("decoded map %v has no baz key", m)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		data := Encode(t, f, Sample())
		for cut := 1; cut <= len(data); cut++ {
			var got Record
			err := f.Decode(bytes.NewReader(data[:len(data)-cut]), &got)
			if !errors.Is(err, envelope.ErrTruncated) {
				t.Fatalf("Decode() with %d bytes cut error = %v, want ErrTruncated", cut, err)
			}
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		data := Encode(t, f, map[string]string{"bar": "not a number"})

		var got Record
		err := f.Decode(bytes.NewReader(data), &got)
		if !errors.Is(err, envelope.ErrTypeMismatch) {
			t.Errorf("Decode() error = %v, want ErrTypeMismatch", err)
		}
	})

	t.Run("TrailingData", func(t *testing.T) {
		data := Encode(t, f, Sample())
		data = append(data, Encode(t, f, Sample())...)

		var got Record
		err := f.Decode(bytes.NewReader(data), &got)
		if !errors.Is(err, envelope.ErrTrailingData) {
			t.Errorf("Decode() error = %v, want ErrTrailingData", err)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Encode(&buf, make(chan int)); err == nil {
			t.Error("Encode(chan) error = nil, want error")
		}
	})
}
