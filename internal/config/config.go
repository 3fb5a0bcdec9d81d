// Package config loads the application configuration for the dedupclean CLI.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	dedup "github.com/ideamans/go-dedup-cleaner"
)

// DefaultConfigFile is the config file looked up when --config is not given
const DefaultConfigFile = ".dedupclean.yaml"

// Config represents dedupclean configuration options
type Config struct {
	// CachePath is the directory tree to scan and clean
	CachePath string `yaml:"cache_path"`

	// NamePattern is the regular expression that recognizes auto-numbered
	// copy suffixes in file names
	NamePattern string `yaml:"name_pattern"`

	// MinFileSize is the minimum size in bytes for a file to be deleted
	MinFileSize int64 `yaml:"min_file_size"`

	// Concurrency is the worker count for metadata and hashing batches
	// (0 = number of CPUs)
	Concurrency int `yaml:"concurrency"`

	// ResultDB is the path of the database holding persisted scan results
	ResultDB string `yaml:"result_db"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		CachePath:   "",
		NamePattern: dedup.DefaultNamePattern,
		MinFileSize: 1024, // ignore tiny files by default
		Concurrency: 0,
		ResultDB:    ".dedupclean/results.db",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from the file over the defaults.
	if fileCfg.CachePath != "" {
		cfg.CachePath = fileCfg.CachePath
	}
	if fileCfg.NamePattern != "" {
		cfg.NamePattern = fileCfg.NamePattern
	}
	if fileCfg.MinFileSize != 0 {
		cfg.MinFileSize = fileCfg.MinFileSize
	}
	if fileCfg.Concurrency != 0 {
		cfg.Concurrency = fileCfg.Concurrency
	}
	if fileCfg.ResultDB != "" {
		cfg.ResultDB = fileCfg.ResultDB
	}

	return cfg, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.MinFileSize < 0 {
		return fmt.Errorf("min_file_size must be >= 0, got %d", c.MinFileSize)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if c.ResultDB == "" {
		return fmt.Errorf("result_db cannot be empty")
	}
	if _, err := regexp.Compile(c.NamePattern); err != nil {
		return fmt.Errorf("invalid name_pattern %q: %w", c.NamePattern, err)
	}
	return nil
}
