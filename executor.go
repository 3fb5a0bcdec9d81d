package godedupcleaner

import (
	"fmt"
	"os"
	"time"
)

// Execute applies a cleaning plan. For every file marked for deletion it
// best-effort normalizes permissions, then removes the file. Per-file
// failures are isolated: they are reported through config.Callbacks.OnError
// and abort neither the current directory group nor later ones. A file that
// is already missing counts as already handled, so executing a plan against
// a tree that changed underneath it is safe.
//
// The plan is consumed by this call; executing it again returns
// ErrPlanConsumed. Fresh work requires a fresh scan.
func Execute(plan *CleaningPlan, config ExecuteConfig) (*CleaningOutcome, error) {
	start := time.Now()

	config.setDefaults()
	if plan == nil {
		return nil, ErrNoPlan
	}
	if !plan.consume() {
		return nil, ErrPlanConsumed
	}

	outcome := &CleaningOutcome{
		Deleted: make(map[string][]FileRecord),
	}

	total := len(plan.Groups)
	interval := config.reportIntervalFor(total)

	for i, group := range plan.Groups {
		deleted := deleteGroupFiles(group, config.Callbacks)
		if len(deleted) > 0 {
			outcome.Deleted[group.Dir] = append(outcome.Deleted[group.Dir], deleted...)
			outcome.FilesDeleted += len(deleted)
			for _, record := range deleted {
				outcome.FreedBytes += record.Size
			}
		}

		if (i+1)%interval == 0 || i+1 == total {
			config.Progress.Publish(ProgressEvent{
				Current: i + 1,
				Total:   total,
				Message: fmt.Sprintf("cleaning %s", group.Dir),
			})
		}
	}

	config.Progress.Publish(ProgressEvent{
		Current:   total,
		Total:     total,
		Message:   "cleaning complete",
		Completed: true,
	})

	outcome.Duration = time.Since(start)
	return outcome, nil
}

// deleteGroupFiles removes the delete candidates of one directory group and
// returns the records actually removed.
func deleteGroupFiles(group DirectoryGroup, callbacks Callbacks) []FileRecord {
	var deleted []FileRecord

	for _, record := range group.Delete {
		// A fixup failure is a warning, not fatal; deletion is still attempted.
		if err := makeDeletable(record.Path); err != nil {
			callbacks.reportError(ErrorTypePermission, record.Path, err)
		}

		if err := os.Remove(record.Path); err != nil {
			if os.IsNotExist(err) {
				// Already gone, treated as handled.
				continue
			}
			callbacks.reportError(ErrorTypeDelete, record.Path, err)
			continue
		}

		deleted = append(deleted, record)
		callSafe(callbacks.OnFileDeleted, FileDeletedInfo{Path: record.Path, Size: record.Size})
	}

	return deleted
}
