package godedupcleaner

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ScanResult is the flat, directory-agnostic outcome of a duplicate scan.
// It carries everything needed to rebuild a cleaning plan later, so it can be
// persisted between invocations; the directory-partitioned plan itself is
// recomputed fresh via BuildPlan and never stored.
type ScanResult struct {
	// ID uniquely identifies this scan
	ID string

	// RootDir is the absolute path of the scanned directory
	RootDir string

	// TotalFiles is the number of regular files seen by the collector
	TotalFiles int

	// DuplicateCount is the number of files across all duplicate groups
	DuplicateCount int

	// Groups holds the duplicate groups keyed by pattern identity or digest
	Groups DuplicateGroups

	// ScanDuration is the elapsed wall-clock time of the scan
	ScanDuration time.Duration

	// ScannedAt is when the scan started
	ScannedAt time.Time
}

// Scan walks dirPath, detects duplicate files, and returns the result.
// Configuration problems surface immediately; a missing root or an empty
// tree returns ErrSourceUnavailable. Per-file stat and hash failures are
// reported through config.Callbacks.OnError and never abort the scan.
func Scan(dirPath string, config ScanConfig) (*ScanResult, error) {
	start := time.Now()

	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	rootPath, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, err
	}

	config.Progress.Publish(ProgressEvent{Message: "collecting file metadata"})
	records, err := collectRecords(rootPath, config.ActualWorkerCount(), config.Callbacks)
	if err != nil {
		return nil, err
	}

	config.Progress.Publish(ProgressEvent{Message: "detecting duplicate files"})
	matcher := newPatternMatcher(config.pattern)
	groups := detectDuplicates(records, matcher, config.ActualWorkerCount(), config.Callbacks)

	duplicateCount := 0
	for _, members := range groups {
		duplicateCount += len(members)
	}

	config.Progress.Publish(ProgressEvent{Message: "scan complete", Completed: true})

	return &ScanResult{
		ID:             uuid.NewString(),
		RootDir:        rootPath,
		TotalFiles:     len(records),
		DuplicateCount: duplicateCount,
		Groups:         groups,
		ScanDuration:   time.Since(start),
		ScannedAt:      start,
	}, nil
}
