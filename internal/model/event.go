package model

import "time"

type EventKind string

const (
	DirectoryCreated EventKind = "DIR_CREATED"
	FileCreated      EventKind = "FILE_CREATED"
)

type FileEvent struct {
	Kind      EventKind
	Path      string
	Timestamp time.Time
}

// Decision is the action taken for a single event.
type Decision string

const (
	DecisionCreateDirectory Decision = "CREATE_DIRECTORY"
	DecisionCopyFile        Decision = "COPY_FILE"
	DecisionCopyMissing     Decision = "COPY_MISSING"
	DecisionSkipUnchanged   Decision = "SKIP_UNCHANGED"
	DecisionFailed          Decision = "FAILED"
)

type SyncResult struct {
	Event    FileEvent
	Decision Decision
	SrcPath  string
	DstPath  string
	Err      error
}

func (r SyncResult) Failed() bool {
	return r.Err != nil
}
