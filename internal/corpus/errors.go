package corpus

import (
	"errors"
	"fmt"
)

// ErrLocked reports that another process holds the run lock for a directory.
var ErrLocked = errors.New("corpus directory is locked by another textpurge process")

// FileAccessError reports a file that could not be listed, read, or written.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for callers that map failures to exit paths.
func (e *FileAccessError) ErrorKind() string { return "file_access" }
