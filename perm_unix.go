//go:build !windows
// +build !windows

package godedupcleaner

import "os"

// makeDeletable best-effort clears restrictions that would block removal.
// On Unix-like platforms that means ensuring the owner can write the file.
// Callers treat a failure as a warning and attempt deletion anyway, which
// doubles as the no-op fallback on platforms where chmod is unsupported.
func makeDeletable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0200 != 0 {
		return nil
	}
	return os.Chmod(path, info.Mode().Perm()|0200)
}
