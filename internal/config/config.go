package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PipelineConfig contains the merge/filter/dedup pipeline settings
type PipelineConfig struct {
	// Prefixes lists the RootID prefixes retained by the prefix filter
	Prefixes []string `yaml:"prefixes" envconfig:"PREFIXES" validate:"min=1"`
	// DedupPolicy is "latest-begin" or "keep-first"
	DedupPolicy string `yaml:"dedup_policy" envconfig:"DEDUP_POLICY" validate:"oneof=latest-begin keep-first"`
	// KeepAllColumns switches the projector from the curated set to all columns
	KeepAllColumns bool `yaml:"keep_all_columns" envconfig:"KEEP_ALL_COLUMNS"`
	// IncludeExpired disables the active-contract filter
	IncludeExpired bool `yaml:"include_expired" envconfig:"INCLUDE_EXPIRED"`
	// HeaderScanRows bounds the header auto-detection scan
	HeaderScanRows int `yaml:"header_scan_rows" envconfig:"HEADER_SCAN_ROWS" validate:"min=1"`
	// FallbackHeaderRow is the 0-based header index used when the scan misses
	FallbackHeaderRow int `yaml:"fallback_header_row" envconfig:"FALLBACK_HEADER_ROW" validate:"min=0"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/clean340b.log",
		},
		Pipeline: PipelineConfig{
			Prefixes:          []string{"DSH", "PED"},
			DedupPolicy:       "latest-begin",
			HeaderScanRows:    15,
			FallbackHeaderRow: 3,
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file (ENROLL340B_CONFIG, default config.yaml), then
// environment variables prefixed ENROLL340B.
func Load() (*Config, error) {
	cfg := Default()

	configFile := os.Getenv("ENROLL340B_CONFIG")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("ENROLL340B", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// normalize upper-cases the prefix set so filter comparisons are case-stable
func (c *Config) normalize() {
	for i, p := range c.Pipeline.Prefixes {
		c.Pipeline.Prefixes[i] = strings.ToUpper(strings.TrimSpace(p))
	}
}

// validate checks the configuration using struct tags
func (c *Config) validate() error {
	return validator.New().Struct(c)
}
