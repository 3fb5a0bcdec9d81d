package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	dedup "github.com/ideamans/go-dedup-cleaner"
)

// barSink renders progress events as an in-place ASCII progress bar. It is
// only used when stdout is a terminal; otherwise progress stays silent and
// the final summary speaks for itself.
type barSink struct {
	out         io.Writer
	width       int
	enableColor bool
	mu          sync.Mutex
}

func newBarSink(out io.Writer, width int, enableColor bool) *barSink {
	if width < 1 {
		width = 24
	}
	return &barSink{out: out, width: width, enableColor: enableColor}
}

// Publish implements dedup.ProgressSink.
func (b *barSink) Publish(event dedup.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if event.Total == 0 {
		fmt.Fprintf(b.out, "%s\n", event.Message)
		return
	}

	perc := 0
	if event.Total > 0 {
		perc = event.Current * 100 / event.Total
		if perc > 100 {
			perc = 100
		}
	}
	filled := perc * b.width / 100

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", b.width-filled) + "]"
	line := fmt.Sprintf("\r%s %d/%d (%d%%)", bar, event.Current, event.Total, perc)

	if b.enableColor && perc < 100 {
		line = fmt.Sprintf("\r\033[36m%s\033[0m", line[1:]) // Cyan for in-progress
	} else if b.enableColor {
		line = fmt.Sprintf("\r\033[32m%s\033[0m", line[1:]) // Green for complete
	}

	fmt.Fprint(b.out, line)
	if event.Completed {
		fmt.Fprintf(b.out, "\n%s\n", event.Message)
	}
}
