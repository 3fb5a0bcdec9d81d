package godedupcleaner

import "path/filepath"

// FileRecord describes a regular file observed during collection. It is
// created by the collector, treated as read-only downstream, and describes,
// never owns, the underlying file.
type FileRecord struct {
	// Path is the absolute path of the file
	Path string `json:"path"`

	// Size is the file size in bytes
	Size int64 `json:"size"`

	// ModTime is the last modification time in Unix seconds
	ModTime int64 `json:"modified"`

	// Digest is the hex content digest, set only for records that went
	// through the hashing phase
	Digest string `json:"digest,omitempty"`
}

// Name returns the file name without its directory
func (r FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// Dir returns the parent directory of the file
func (r FileRecord) Dir() string {
	return filepath.Dir(r.Path)
}

// DuplicateGroups maps a group key (pattern identity or content digest) to
// the files judged copies of one another. Every group has at least two
// members; singleton groups never appear.
type DuplicateGroups map[string][]FileRecord
