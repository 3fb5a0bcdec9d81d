package godedupcleaner

// Callbacks contains callback functions for monitoring scan and cleaning
// operations. All callbacks are optional.
type Callbacks struct {
	OnFileDeleted func(info FileDeletedInfo)
	OnError       func(info ErrorInfo)
}

// FileDeletedInfo contains information about a deleted file
type FileDeletedInfo struct {
	Path string
	Size int64
}

// ErrorInfo contains information about an isolated per-file error.
// These errors never abort the surrounding batch.
type ErrorInfo struct {
	Type ErrorType
	Path string
	Err  error
}

// ErrorType represents the kind of per-file error
type ErrorType string

const (
	ErrorTypeStat       ErrorType = "stat"
	ErrorTypeHash       ErrorType = "hash"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeDelete     ErrorType = "delete"
)

// callSafe safely calls a callback function if it's not nil
func callSafe[T any](fn func(T), info T) {
	if fn != nil {
		fn(info)
	}
}

func (c Callbacks) reportError(errType ErrorType, path string, err error) {
	callSafe(c.OnError, ErrorInfo{Type: errType, Path: path, Err: err})
}
