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

// NewCleanCommand creates the clean subcommand
func NewCleanCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Preview and remove the duplicates found by the last scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if dir == "" {
				return fmt.Errorf("no cache directory configured; set cache_path or pass --dir")
			}

			st, err := store.Open(cfg.ResultDB)
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := st.LoadLatest(cmd.Context(), dir)
			if err != nil {
				if errors.Is(err, store.ErrNoScanResult) {
					return fmt.Errorf("no scan result for %s; run 'dedupclean scan' first", dir)
				}
				return err
			}

			plan := result.BuildPlan(cfg.MinFileSize)
			if plan.Empty() {
				successColor.Println("nothing to clean")
				return nil
			}

			printPlanPreview(plan)

			if !force && !confirm("\nDelete these files? This cannot be undone") {
				fmt.Println("cleaning cancelled")
				return nil
			}

			freeBefore, freeBeforeErr := dedup.GetDiskFreeSpace(dir)

			execConfig := dedup.ExecuteConfig{
				Callbacks: dedup.Callbacks{
					OnError: warnOnFileError,
				},
			}
			if stdoutIsTerminal() {
				execConfig.Progress = dedup.NewThrottledSink(
					newBarSink(os.Stdout, 24, true), 100*time.Millisecond)
			}

			outcome, err := dedup.Execute(plan, execConfig)
			if err != nil {
				return err
			}

			// The stored result described a tree that no longer exists in
			// that shape; fresh work requires a fresh scan.
			if err := st.Delete(cmd.Context(), result.ID); err != nil {
				warnColor.Printf("warning: could not discard scan result: %v\n", err)
			}

			headerColor.Println("Cleaning complete")
			fmt.Printf("  files deleted: %d\n", outcome.FilesDeleted)
			fmt.Printf("  space freed:   %s\n", formatSize(outcome.FreedBytes))
			fmt.Printf("  elapsed:       %s\n", outcome.Duration.Round(time.Millisecond))

			if freeBeforeErr == nil {
				if freeAfter, err := dedup.GetDiskFreeSpace(dir); err == nil {
					fmt.Printf("  free space:    %s -> %s\n", formatSize(freeBefore), formatSize(freeAfter))
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}
