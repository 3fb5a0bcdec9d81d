package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	dedup "github.com/ideamans/go-dedup-cleaner"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// stdoutIsTerminal reports whether interactive output (progress bars,
// prompts) makes sense.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// formatSize renders a byte count for humans
func formatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// confirm asks the user a yes/no question and returns their answer.
// Anything but an explicit yes is a no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// warnOnFileError prints an isolated per-file error without interrupting the
// operation that reported it.
func warnOnFileError(info dedup.ErrorInfo) {
	warnColor.Fprintf(os.Stderr, "warning [%s]: %s: %v\n", info.Type, info.Path, info.Err)
}

// printPlanPreview renders the cleaning plan before anything is deleted.
func printPlanPreview(plan *dedup.CleaningPlan) {
	headerColor.Println("Cleaning preview")
	for _, group := range plan.Groups {
		fmt.Printf("  %s\n", group.Dir)
		successColor.Printf("    keep   %s\n", group.Keep.Name())
		for _, record := range group.Delete {
			errorColor.Printf("    delete %s (%s)\n", record.Name(), formatSize(record.Size))
		}
	}
	fmt.Printf("\nEstimated: %d files, %s to free\n",
		plan.EstimatedFiles, formatSize(plan.EstimatedFreedBytes))
}
