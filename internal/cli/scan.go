package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	dedup "github.com/ideamans/go-dedup-cleaner"
	"github.com/ideamans/go-dedup-cleaner/store"
)

// NewScanCommand creates the scan subcommand
func NewScanCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the cache directory for duplicate files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if dir == "" {
				return fmt.Errorf("no cache directory configured; set cache_path or pass --dir")
			}

			scanConfig := dedup.ScanConfig{
				NamePattern: cfg.NamePattern,
				Concurrency: cfg.Concurrency,
				Callbacks: dedup.Callbacks{
					OnError: warnOnFileError,
				},
			}
			if stdoutIsTerminal() {
				scanConfig.Progress = dedup.NewThrottledSink(
					newBarSink(os.Stdout, 24, true), 100*time.Millisecond)
			}

			result, err := dedup.Scan(dir, scanConfig)
			if err != nil {
				if errors.Is(err, dedup.ErrSourceUnavailable) {
					warnColor.Printf("nothing to scan: %v\n", err)
					return nil
				}
				return err
			}

			st, err := store.Open(cfg.ResultDB)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Save(cmd.Context(), result); err != nil {
				return err
			}

			headerColor.Println("Scan result")
			fmt.Printf("  directory:       %s\n", result.RootDir)
			fmt.Printf("  files scanned:   %d\n", result.TotalFiles)
			fmt.Printf("  duplicate files: %d in %d groups\n", result.DuplicateCount, len(result.Groups))
			fmt.Printf("  elapsed:         %s\n", result.ScanDuration.Round(time.Millisecond))

			if free, err := dedup.GetDiskFreeSpace(result.RootDir); err == nil {
				fmt.Printf("  free space:      %s\n", formatSize(free))
			}

			if result.DuplicateCount == 0 {
				successColor.Println("no duplicate files found")
				return nil
			}

			if verbose {
				headerColor.Println("\nDuplicate groups")
				for key, members := range result.Groups {
					fmt.Printf("  %s\n", key)
					for _, record := range members {
						fmt.Printf("    %s (%s)\n", record.Path, formatSize(record.Size))
					}
				}
			}

			fmt.Println("\nrun 'dedupclean clean' to preview and remove duplicates")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every duplicate group")

	return cmd
}
