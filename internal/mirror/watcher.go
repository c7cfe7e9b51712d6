package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mirrorsync/internal/model"
	"mirrorsync/internal/syncer"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

var _ syncer.EventSource = (*Watcher)(nil)

// Watcher turns fsnotify Create notifications under root into creation
// events. Every other op is dropped.
type Watcher struct {
	fw       *fsnotify.Watcher
	root     string
	scan     bool
	log      *zap.Logger
	eventCh  chan model.FileEvent
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher prepares a recursive watch on root. With initialScan set,
// Start first reports everything already under root.
func NewWatcher(root string, bufferSize int, initialScan bool, log *zap.Logger) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("source directory not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", absRoot)
	}

	if log == nil {
		log = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		fw:      fw,
		root:    absRoot,
		scan:    initialScan,
		log:     log,
		eventCh: make(chan model.FileEvent, bufferSize),
		doneCh:  make(chan struct{}),
	}, nil
}

func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		_ = w.fw.Close()
		return err
	}

	go w.run()

	w.log.Info("watcher started",
		zap.String("dir", w.root))
	return nil
}

func (w *Watcher) Events() <-chan model.FileEvent {
	return w.eventCh
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.doneCh)
		_ = w.fw.Close()
	})
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if err := w.fw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			w.log.Debug("watching directory",
				zap.String("path", path))
		}

		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.eventCh)

	if w.scan && !w.emitExisting(w.root) {
		return
	}

	for {
		select {
		case <-w.doneCh:
			w.log.Info("watcher stopping")
			return

		case fsEvent, ok := <-w.fw.Events:
			if !ok {
				return
			}

			if !fsEvent.Op.Has(fsnotify.Create) {
				continue
			}

			if !w.handleCreate(fsEvent.Name) {
				return
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}

			w.log.Error("watcher error",
				zap.Error(err))
		}
	}
}

// handleCreate reports false once the watcher is stopping.
func (w *Watcher) handleCreate(path string) bool {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		// a vanished entry is still reported so its failure gets logged
		return w.emit(model.FileEvent{Kind: model.FileCreated, Path: path, Timestamp: time.Now()})
	}

	if err := w.addRecursive(path); err != nil {
		w.log.Warn("failed to watch new directory",
			zap.String("path", path),
			zap.Error(err))
	} else {
		w.log.Debug("added new directory to watch",
			zap.String("path", path))
	}

	if !w.emit(model.FileEvent{Kind: model.DirectoryCreated, Path: path, Timestamp: time.Now()}) {
		return false
	}

	// entries created before the watch on path was registered produce no
	// notification of their own
	return w.emitExisting(path)
}

func (w *Watcher) emitExisting(dir string) bool {
	events, err := Scan(dir)
	if err != nil {
		w.log.Warn("failed to scan directory",
			zap.String("path", dir),
			zap.Error(err))
	}

	for _, event := range events {
		if !w.emit(event) {
			return false
		}
	}

	return true
}

// emit blocks while the buffer is full rather than dropping the event.
func (w *Watcher) emit(event model.FileEvent) bool {
	select {
	case w.eventCh <- event:
		return true
	case <-w.doneCh:
		return false
	}
}
