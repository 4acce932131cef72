package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Analysis.MaxRingSize != 10 {
		t.Errorf("Expected max ring size 10, got %d", cfg.Analysis.MaxRingSize)
	}
	if cfg.Analysis.MaxPathLength != 5 {
		t.Errorf("Expected max path length 5, got %d", cfg.Analysis.MaxPathLength)
	}
	if cfg.Perception.MaxHydrogenBondLength != 1.15 {
		t.Errorf("Expected hydrogen bond length 1.15, got %g", cfg.Perception.MaxHydrogenBondLength)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
analysis:
  max_ring_size: 7
  method: cremer-pople
logging:
  format: json
batch:
  workers: 2
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Analysis.MaxRingSize != 7 {
		t.Errorf("max_ring_size = %d, want 7", cfg.Analysis.MaxRingSize)
	}
	if cfg.Analysis.MaxPathLength != 5 {
		t.Errorf("max_path_length should keep default, got %d", cfg.Analysis.MaxPathLength)
	}
	if cfg.Analysis.Method != "cremer-pople" {
		t.Errorf("method = %q", cfg.Analysis.Method)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Batch.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Batch.Workers)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "ring size too small",
			yaml: "analysis:\n  max_ring_size: 2\n",
			want: []string{"analysis.max_ring_size"},
		},
		{
			name: "several errors at once",
			yaml: "analysis:\n  max_path_length: 0\n  method: polar\nbatch:\n  workers: 0\n",
			want: []string{"analysis.max_path_length", "analysis.method", "batch.workers"},
		},
		{
			name: "negative tolerance",
			yaml: "perception:\n  tolerance: -1\n",
			want: []string{"perception.tolerance"},
		},
		{
			name: "bad log format",
			yaml: "logging:\n  format: xml\n",
			want: []string{"logging.format"},
		},
		{
			name: "malformed yaml",
			yaml: "analysis: [",
			want: []string{"failed to parse config"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestParse_DisabledPerceptionSkipsChecks(t *testing.T) {
	if _, err := Parse([]byte("perception:\n  enabled: false\n  tolerance: -1\n")); err != nil {
		t.Errorf("Parse() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paperchain.yaml")
	if err := os.WriteFile(path, []byte("output:\n  compress: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Output.Compress {
		t.Error("Expected compress to be set")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
	if _, err := Load(""); !errors.Is(err, ErrNoConfigPath) {
		t.Errorf("Load(\"\") error = %v, want ErrNoConfigPath", err)
	}
}
