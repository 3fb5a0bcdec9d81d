package godedupcleaner

import "time"

// CleaningOutcome represents the result of executing a cleaning plan. All
// counts reflect files actually removed, never the plan's estimate.
type CleaningOutcome struct {
	// FilesDeleted is the number of files actually removed
	FilesDeleted int

	// FreedBytes is the total size of the removed files
	FreedBytes int64

	// Deleted records what was removed, keyed by parent directory
	Deleted map[string][]FileRecord

	// Duration is the elapsed wall-clock time of the execution
	Duration time.Duration
}
