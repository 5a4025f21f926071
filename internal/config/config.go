// Package config resolves the pipeline's directory layout and chunking
// parameters from defaults, an optional TOML file, and FUNDCLEAN_* env
// variables.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. FUNDCLEAN_RAW_DIR.
const EnvPrefix = "FUNDCLEAN"

var quarterRE = regexp.MustCompile(`^(?i)(\d{4})[- ]?Q([1-4])$`)

// Config is the resolved configuration for a run.
type Config struct {
	RawDir         string `mapstructure:"raw_dir" yaml:"raw_dir"`
	CleanPDFDir    string `mapstructure:"clean_pdf_dir" yaml:"clean_pdf_dir"`
	CleanChunksDir string `mapstructure:"clean_chunks_dir" yaml:"clean_chunks_dir"`
	StructuredDir  string `mapstructure:"structured_dir" yaml:"structured_dir"`
	StateDir       string `mapstructure:"state_dir" yaml:"state_dir"`
	LogDir         string `mapstructure:"log_dir" yaml:"log_dir"`
	DriveFolderID  string `mapstructure:"drive_folder_id" yaml:"drive_folder_id"`
	ChunkSize      int    `mapstructure:"chunk_size" yaml:"chunk_size"`
	ChunkOverlap   int    `mapstructure:"chunk_overlap" yaml:"chunk_overlap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RawDir:         "raw/pdf",
		CleanPDFDir:    "clean/pdf",
		CleanChunksDir: "clean/chunks",
		StructuredDir:  "outputs/structured",
		StateDir:       "state",
		LogDir:         "logs",
		ChunkSize:      600,
		ChunkOverlap:   80,
	}
}

// Load resolves the configuration. configFile may be empty, in which case
// fundclean.toml and config/fundclean.toml are searched in the working
// directory. Environment variables FUNDCLEAN_* override file values.
func Load(configFile string) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("raw_dir", defaults.RawDir)
	v.SetDefault("clean_pdf_dir", defaults.CleanPDFDir)
	v.SetDefault("clean_chunks_dir", defaults.CleanChunksDir)
	v.SetDefault("structured_dir", defaults.StructuredDir)
	v.SetDefault("state_dir", defaults.StateDir)
	v.SetDefault("log_dir", defaults.LogDir)
	v.SetDefault("drive_folder_id", defaults.DriveFolderID)
	v.SetDefault("chunk_size", defaults.ChunkSize)
	v.SetDefault("chunk_overlap", defaults.ChunkOverlap)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("fundclean")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
		// No config file anywhere on the search path is fine; anything
		// else (unreadable, malformed TOML) is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on parameters that would only blow up mid-run.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be >= 0 and < chunk_size, got %d", c.ChunkOverlap)
	}
	return nil
}

// ResolveInputDir returns the raw-PDF directory for a quarter, honoring an
// override base directory.
func (c Config) ResolveInputDir(quarter, override string) (string, error) {
	return resolveQuarterDir(c.RawDir, quarter, override)
}

// ResolveCleanPDFDir returns the filtered-document directory for a quarter.
func (c Config) ResolveCleanPDFDir(quarter, override string) (string, error) {
	return resolveQuarterDir(c.CleanPDFDir, quarter, override)
}

// ResolveChunksDir returns the chunk-output directory for a quarter.
func (c Config) ResolveChunksDir(quarter, override string) (string, error) {
	return resolveQuarterDir(c.CleanChunksDir, quarter, override)
}

func resolveQuarterDir(base, quarter, override string) (string, error) {
	folder, err := QuarterFolderName(quarter)
	if err != nil {
		return "", err
	}
	if override != "" {
		base = override
	}
	return filepath.Join(base, folder), nil
}

// NormalizeQuarter canonicalizes a YYYY[- ]Q[1-4] label (case-insensitive)
// to YYYYQn form.
func NormalizeQuarter(quarter string) (string, error) {
	m := quarterRE.FindStringSubmatch(strings.TrimSpace(quarter))
	if m == nil {
		return "", fmt.Errorf("quarter must be in the format YYYYQ#, e.g. 2025Q2 (case-insensitive): %q", quarter)
	}
	return m[1] + "Q" + m[2], nil
}

// QuarterFolderName maps a quarter label to its on-disk folder name,
// YYYY-Qn.
func QuarterFolderName(quarter string) (string, error) {
	norm, err := NormalizeQuarter(quarter)
	if err != nil {
		return "", err
	}
	return norm[:4] + "-Q" + norm[5:], nil
}
