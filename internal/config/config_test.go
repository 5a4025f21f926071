package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeQuarter(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025Q2", "2025Q2", false},
		{"2025-Q2", "2025Q2", false},
		{"2025 Q2", "2025Q2", false},
		{"2025q4", "2025Q4", false},
		{"  2024Q1  ", "2024Q1", false},
		{"2025Q5", "", true},
		{"25Q1", "", true},
		{"2025", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeQuarter(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeQuarter(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeQuarter(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeQuarter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuarterFolderName(t *testing.T) {
	got, err := QuarterFolderName("2025q2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2025-Q2" {
		t.Errorf("QuarterFolderName = %q, want 2025-Q2", got)
	}
}

func TestConfig_ResolveDirs(t *testing.T) {
	cfg := Default()

	got, err := cfg.ResolveInputDir("2025Q2", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("raw", "pdf", "2025-Q2") {
		t.Errorf("ResolveInputDir = %q", got)
	}

	got, err = cfg.ResolveChunksDir("2025Q2", "/tmp/override")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/tmp/override", "2025-Q2") {
		t.Errorf("ResolveChunksDir with override = %q", got)
	}

	if _, err := cfg.ResolveCleanPDFDir("bogus", ""); err == nil {
		t.Error("invalid quarter must fail dir resolution")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	cfg.ChunkSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero chunk size must fail")
	}

	cfg = Default()
	cfg.ChunkOverlap = cfg.ChunkSize
	if err := cfg.Validate(); err == nil {
		t.Error("overlap >= chunk size must fail")
	}
}

func TestLoad_TOMLFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fundclean.toml")
	content := "raw_dir = \"/data/raw\"\nchunk_size = 500\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RawDir != "/data/raw" {
		t.Errorf("RawDir = %q", cfg.RawDir)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d", cfg.ChunkSize)
	}
	// Unset keys keep their defaults.
	if cfg.StateDir != "state" {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FUNDCLEAN_STATE_DIR", "/custom/state")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StateDir != "/custom/state" {
		t.Errorf("StateDir = %q, want env override", cfg.StateDir)
	}
}

func TestLoad_InvalidChunkParamsFailFast(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fundclean.toml")
	if err := os.WriteFile(path, []byte("chunk_size = -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("invalid chunk size must fail at load time")
	}
}
