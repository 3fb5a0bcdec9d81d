package godedupcleaner

// DiskUsage represents disk usage information for a path's filesystem
type DiskUsage struct {
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// GetDiskFreeSpace returns the available disk space for the given directory
// path. Useful for reporting how much room a cleaning run recovered:
//
//	before, _ := GetDiskFreeSpace(cacheDir)
//	outcome, _ := Execute(plan, config)
//	after, _ := GetDiskFreeSpace(cacheDir)
func GetDiskFreeSpace(dirPath string) (int64, error) {
	usage, err := GetDiskUsage(dirPath)
	if err != nil {
		return 0, err
	}
	return int64(usage.Free), nil
}
