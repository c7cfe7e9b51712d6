package mirror

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// SyncError is the failure of a single event. Kind is the concrete type of
// the root cause. Location is the file:line in the processor where the event
// was declared failed, not the frame inside util or os that returned the
// underlying error.
type SyncError struct {
	Op       string
	Path     string
	Kind     string
	Location string
	Err      error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// newSyncError records its caller's position as Location, so it must be
// called directly from the processor step that failed.
func newSyncError(op, path string, err error) *SyncError {
	location := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		location = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	return &SyncError{
		Op:       op,
		Path:     path,
		Kind:     errorKind(err),
		Location: location,
		Err:      err,
	}
}

// errorKind names the first error in the chain that is not an fmt.Errorf
// wrapper, e.g. *fs.PathError or *pathmap.MappingError.
func errorKind(err error) string {
	for err != nil {
		kind := fmt.Sprintf("%T", err)
		if !strings.HasPrefix(kind, "*fmt.") {
			return kind
		}

		next := errors.Unwrap(err)
		if next == nil {
			return kind
		}
		err = next
	}

	return "<nil>"
}
