package mirror

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mirrorsync/internal/model"
	"mirrorsync/internal/syncer"

	"go.uber.org/zap"
)

// Scan lists everything below dir as creation events in walk order, so a
// directory always precedes its contents. dir itself is not included.
// Unreadable entries are skipped and reported in the joined error; only a
// failure on dir itself yields no events.
func Scan(dir string) ([]model.FileEvent, error) {
	var (
		events []model.FileEvent
		errs   []error
	)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}

			errs = append(errs, fmt.Errorf("failed to scan %s: %w", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == dir {
			return nil
		}

		kind := model.FileCreated
		if d.IsDir() {
			kind = model.DirectoryCreated
		}

		events = append(events, model.FileEvent{
			Kind:      kind,
			Path:      path,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return events, errors.Join(errs...)
}

var _ syncer.EventSource = (*ScanSource)(nil)

// ScanSource reports what already exists under root once, then closes.
type ScanSource struct {
	root     string
	log      *zap.Logger
	eventCh  chan model.FileEvent
	doneCh   chan struct{}
	stopOnce sync.Once
}

func NewScanSource(root string, log *zap.Logger) *ScanSource {
	if log == nil {
		log = zap.NewNop()
	}

	return &ScanSource{
		root:    root,
		log:     log,
		eventCh: make(chan model.FileEvent),
		doneCh:  make(chan struct{}),
	}
}

func (s *ScanSource) Start() error {
	events, err := Scan(s.root)
	if events == nil && err != nil {
		return err
	}
	if err != nil {
		s.log.Warn("scan incomplete",
			zap.String("root", s.root),
			zap.Error(err))
	}

	go func() {
		defer close(s.eventCh)
		for _, event := range events {
			select {
			case s.eventCh <- event:
			case <-s.doneCh:
				return
			}
		}
	}()

	return nil
}

func (s *ScanSource) Events() <-chan model.FileEvent {
	return s.eventCh
}

func (s *ScanSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.doneCh)
	})
}
