package godedupcleaner

import (
	"fmt"
	"regexp"
	"runtime"
)

// DefaultNamePattern recognizes numeric parenthetical suffixes before the
// extension, the naming scheme of auto-numbered copies like "photo(1).jpg".
const DefaultNamePattern = `\(\d+\)\.[a-zA-Z0-9]+$`

// ScanConfig represents the configuration for a duplicate scan
type ScanConfig struct {
	// NamePattern is the regular expression used to derive a file's base
	// identity from its name. If empty, DefaultNamePattern is used.
	NamePattern string

	// Concurrency settings
	// Concurrency specifies the desired level of concurrency for metadata
	// collection and content hashing. If 0, defaults to runtime.NumCPU().
	Concurrency int

	// MaxConcurrency limits the maximum level of concurrency.
	// Defaults to 4; the batches are I/O bound and gain little beyond that.
	// The actual concurrency will be min(Concurrency, MaxConcurrency).
	MaxConcurrency int

	// Callbacks
	Callbacks Callbacks

	// Progress receives scan progress events. If nil, events are discarded.
	Progress ProgressSink

	pattern *regexp.Regexp
}

// setDefaults sets default values for the configuration
func (c *ScanConfig) setDefaults() {
	if c.NamePattern == "" {
		c.NamePattern = DefaultNamePattern
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 4
	}
	if c.Progress == nil {
		c.Progress = NopSink{}
	}
}

// validate checks if the configuration is valid
func (c *ScanConfig) validate() error {
	if c.Concurrency < 0 || c.MaxConcurrency < 0 {
		return ErrInvalidConfig
	}

	re, err := regexp.Compile(c.NamePattern)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPattern, c.NamePattern, err)
	}
	c.pattern = re

	return nil
}

// ActualWorkerCount returns the actual number of workers that will be used
func (c *ScanConfig) ActualWorkerCount() int {
	workers := c.Concurrency
	if workers > c.MaxConcurrency {
		workers = c.MaxConcurrency
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ExecuteConfig represents the configuration for executing a cleaning plan
type ExecuteConfig struct {
	// ReportInterval is the number of directory groups between progress
	// events. If 0, a tenth of the group count is used, clamped to [1, 1000].
	ReportInterval int

	// Callbacks
	Callbacks Callbacks

	// Progress receives execution progress events. If nil, events are discarded.
	Progress ProgressSink
}

// setDefaults sets default values for the configuration
func (c *ExecuteConfig) setDefaults() {
	if c.Progress == nil {
		c.Progress = NopSink{}
	}
}

// reportIntervalFor resolves the report interval for a plan of the given size
func (c *ExecuteConfig) reportIntervalFor(totalGroups int) int {
	interval := c.ReportInterval
	if interval <= 0 {
		interval = totalGroups / 10
	}
	if interval < 1 {
		interval = 1
	}
	if interval > 1000 {
		interval = 1000
	}
	return interval
}
