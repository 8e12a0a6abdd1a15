package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/discochess/datutils"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datutils.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Format != "msgpack" || cfg.Output != "json" || cfg.Scheme != "" {
		t.Errorf("Default() = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "format: cbor\nscheme: zstd\nverbose: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != "cbor" || cfg.Scheme != "zstd" || !cfg.Verbose {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want default json", cfg.Output)
	}

	c := datutils.New(cfg.Options()...)
	if c.Format() != datutils.FormatCBOR {
		t.Errorf("client format = %v, want cbor", c.Format())
	}
	if got := c.SchemeFor("out.msg"); got != datutils.SchemeZstd {
		t.Errorf("SchemeFor() = %v, want zstd", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"UnknownFormat", "format: json\n", datutils.ErrUnknownFormat},
		{"UnknownScheme", "scheme: brotli\n", datutils.ErrUnknownScheme},
		{"UnknownOutput", "output: toml\n", nil},
		{"BadYAML", "format: [\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
