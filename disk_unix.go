//go:build !windows
// +build !windows

package godedupcleaner

import (
	"errors"
	"syscall"
)

// GetDiskUsage returns disk usage information for the given path
func GetDiskUsage(path string) (*DiskUsage, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return nil, err
	}

	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	if total == 0 {
		return nil, errors.New("total disk size is 0")
	}
	used := total - free

	return &DiskUsage{
		Total:       total,
		Free:        free,
		Used:        used,
		UsedPercent: float64(used) / float64(total) * 100,
	}, nil
}
