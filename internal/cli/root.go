// Package cli implements the dedupclean command line interface.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ideamans/go-dedup-cleaner/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dedupclean
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupclean",
		Short: "Find and remove duplicate files in a cache directory",
		Long: `Dedupclean locates duplicate files inside a cache directory tree,
where applications accumulate auto-numbered copies like "photo(1).jpg".

It detects duplicates by name pattern and, where names differ, by content
digest; cleaning keeps the oldest file in each directory and removes the
rest after a preview and confirmation.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", config.DefaultConfigFile, "path to the configuration file")
	cmd.PersistentFlags().String("dir", "", "cache directory to operate on (overrides the config file)")

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}

// loadSettings resolves the effective configuration and the target directory
// from the persistent flags and the config file.
func loadSettings(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, "", err
	}
	if dir == "" {
		dir = cfg.CachePath
	}
	if dir == "" {
		return cfg, "", nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", err
	}
	return cfg, abs, nil
}
