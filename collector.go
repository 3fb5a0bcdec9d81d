package godedupcleaner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// isHidden reports whether a name follows the Unix hidden-file convention
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// collectRecords walks the tree below rootPath and returns a FileRecord for
// every regular, non-hidden file. Hidden directories are pruned entirely.
// Metadata reads run on a worker pool since the walk itself is cheap and the
// per-file stat calls dominate. The returned order is unspecified.
//
// A file that vanishes between traversal and stat is silently dropped; the
// listing is best-effort, not an atomic snapshot.
func collectRecords(rootPath string, workers int, callbacks Callbacks) ([]FileRecord, error) {
	info, err := os.Stat(rootPath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, rootPath)
	}

	var paths []string
	walkErr := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			callbacks.reportError(ErrorTypeStat, path, err)
			return nil
		}
		if d.IsDir() {
			if path != rootPath && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) || !d.Type().IsRegular() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, rootPath, walkErr)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files under %s", ErrSourceUnavailable, rootPath)
	}

	taskChan := make(chan string, 100)
	resultChan := make(chan FileRecord, 100)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range taskChan {
				record, ok := statFile(path, callbacks)
				if ok {
					resultChan <- record
				}
			}
		}()
	}

	go func() {
		for _, path := range paths {
			taskChan <- path
		}
		close(taskChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	records := make([]FileRecord, 0, len(paths))
	for record := range resultChan {
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no readable files under %s", ErrSourceUnavailable, rootPath)
	}
	return records, nil
}

// statFile reads the metadata for a single path. Vanished files are dropped
// without an error report.
func statFile(path string, callbacks Callbacks) (FileRecord, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			callbacks.reportError(ErrorTypeStat, path, err)
		}
		return FileRecord{}, false
	}
	if !info.Mode().IsRegular() {
		return FileRecord{}, false
	}

	return FileRecord{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().Unix(),
	}, true
}
