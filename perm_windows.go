//go:build windows
// +build windows

package godedupcleaner

import "syscall"

// makeDeletable best-effort clears restrictions that would block removal.
// On Windows the read-only attribute is what makes os.Remove fail, so it is
// stripped here. Callers treat a failure as a warning and attempt deletion
// anyway.
func makeDeletable(path string) error {
	pathPtr, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	attrs, err := syscall.GetFileAttributes(pathPtr)
	if err != nil {
		return err
	}
	if attrs&syscall.FILE_ATTRIBUTE_READONLY == 0 {
		return nil
	}

	return syscall.SetFileAttributes(pathPtr, attrs&^uint32(syscall.FILE_ATTRIBUTE_READONLY))
}
