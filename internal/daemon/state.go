package daemon

import (
	"sync"
	"time"

	"mirrorsync/internal/model"
)

// State counts outcomes for the status endpoint. The processing goroutine
// writes, HTTP handlers read.
type State struct {
	mu          sync.RWMutex
	src         string
	dst         string
	startedAt   time.Time
	directories int
	copied      int
	overwritten int
	skipped     int
	failed      int
	lastEvent   *time.Time
}

func NewState(src, dst string) *State {
	return &State{
		src:       src,
		dst:       dst,
		startedAt: time.Now(),
	}
}

func (s *State) Record(result model.SyncResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastEvent = new(time.Now())

	switch result.Decision {
	case model.DecisionCreateDirectory:
		s.directories++
	case model.DecisionCopyMissing:
		s.copied++
	case model.DecisionCopyFile:
		s.overwritten++
	case model.DecisionSkipUnchanged:
		s.skipped++
	default:
		s.failed++
	}
}

func (s *State) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.Snapshot{
		Src:         s.src,
		Dst:         s.dst,
		StartedAt:   s.startedAt,
		Directories: s.directories,
		Copied:      s.copied,
		Overwritten: s.overwritten,
		Skipped:     s.skipped,
		Failed:      s.failed,
		LastEvent:   s.lastEvent,
	}
}
