package datutils

import (
	"errors"
	"io/fs"
	"testing"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		kind Kind
		want error
	}{
		{KindIO, ErrIO},
		{KindCompression, ErrCompression},
		{KindSerialization, ErrSerialization},
	}
	sentinels := []error{ErrIO, ErrCompression, ErrSerialization}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := error(&Error{Op: "load", Path: "x.msg", Kind: tt.kind, Err: fs.ErrPermission})
			for _, s := range sentinels {
				if got := errors.Is(err, s); got != (s == tt.want) {
					t.Errorf("errors.Is(%v, %v) = %v", err, s, got)
				}
			}
			if !errors.Is(err, fs.ErrPermission) {
				t.Error("cause is not reachable through Unwrap")
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{
		Op:     "save",
		Path:   "/tmp/out.msg.xz",
		Scheme: SchemeXZ,
		Kind:   KindCompression,
		Err:    errors.New("boom"),
	}
	want := "datutils: save /tmp/out.msg.xz (xz): compression: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKind_StringUnknown(t *testing.T) {
	if got := Kind(0).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
	if errors.Is(&Error{Err: errors.New("x")}, ErrIO) {
		t.Error("zero Kind should not match ErrIO")
	}
}
