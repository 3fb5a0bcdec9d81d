package godedupcleaner

import (
	"sort"
	"sync/atomic"
)

// DirectoryGroup is the portion of one duplicate group confined to a single
// parent directory. Keep is always the member with the smallest modification
// time, ties broken by path ordering; Delete holds the remaining members at
// or above the minimum-size floor.
type DirectoryGroup struct {
	Dir    string
	Keep   FileRecord
	Delete []FileRecord
}

// FreedBytes returns the bytes that deleting this group would free
func (g DirectoryGroup) FreedBytes() int64 {
	var total int64
	for _, record := range g.Delete {
		total += record.Size
	}
	return total
}

// CleaningPlan is the full computed-but-unexecuted set of directory groups
// plus summary totals. A plan is built once per scan, immutable, and consumed
// exactly once by Execute. An empty plan is valid and means nothing to clean.
type CleaningPlan struct {
	Groups []DirectoryGroup

	// EstimatedFiles and EstimatedFreedBytes are planning totals; the
	// outcome of an execution is accounted from actual deletions only.
	EstimatedFiles      int
	EstimatedFreedBytes int64

	consumed atomic.Bool
}

// Empty reports whether the plan contains no work
func (p *CleaningPlan) Empty() bool {
	return len(p.Groups) == 0
}

// consume marks the plan executed. It returns false if the plan was already
// consumed.
func (p *CleaningPlan) consume() bool {
	return p.consumed.CompareAndSwap(false, true)
}

// BuildPlan partitions every duplicate group by parent directory and derives
// the deletion plan. Only sub-groups with two or more members in the same
// directory proceed: cross-directory membership alone never justifies
// deletion. Within a retained sub-group the earliest-modified file is kept
// and the rest become delete candidates, minus anything below minFileSize.
// Sub-groups with no surviving candidates are omitted.
func (r *ScanResult) BuildPlan(minFileSize int64) *CleaningPlan {
	plan := &CleaningPlan{}

	for _, members := range r.Groups {
		for dir, local := range partitionByDir(members) {
			if len(local) < 2 {
				continue
			}

			sortRecords(local)
			keep := local[0]

			var deletes []FileRecord
			for _, record := range local[1:] {
				if record.Size >= minFileSize {
					deletes = append(deletes, record)
				}
			}
			if len(deletes) == 0 {
				continue
			}

			group := DirectoryGroup{Dir: dir, Keep: keep, Delete: deletes}
			plan.Groups = append(plan.Groups, group)
			plan.EstimatedFiles += len(deletes)
			plan.EstimatedFreedBytes += group.FreedBytes()
		}
	}

	// Deterministic plan order regardless of map iteration. Two duplicate
	// groups can land in the same directory, hence the secondary key.
	sort.Slice(plan.Groups, func(i, j int) bool {
		if plan.Groups[i].Dir != plan.Groups[j].Dir {
			return plan.Groups[i].Dir < plan.Groups[j].Dir
		}
		return plan.Groups[i].Keep.Path < plan.Groups[j].Keep.Path
	})

	return plan
}

// partitionByDir splits records by their parent directory
func partitionByDir(records []FileRecord) map[string][]FileRecord {
	byDir := make(map[string][]FileRecord)
	for _, record := range records {
		dir := record.Dir()
		byDir[dir] = append(byDir[dir], record)
	}
	return byDir
}

// sortRecords orders records by modification time ascending, then by path
// for a reproducible tie-break
func sortRecords(records []FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].ModTime != records[j].ModTime {
			return records[i].ModTime < records[j].ModTime
		}
		return records[i].Path < records[j].Path
	})
}
