package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config subcommand
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			headerColor.Println("Configuration")
			fmt.Printf("  cache_path:        %s\n", displayValue(dir))
			fmt.Printf("  name_pattern:      %s\n", cfg.NamePattern)
			fmt.Printf("  min_file_size:     %s\n", formatSize(cfg.MinFileSize))
			fmt.Printf("  concurrency:       %d\n", cfg.Concurrency)
			fmt.Printf("  result_db:         %s\n", cfg.ResultDB)
			return nil
		},
	}
}

func displayValue(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
