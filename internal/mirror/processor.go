// Package mirror turns creation events under a source root into directories
// and file copies under a destination root.
package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mirrorsync/internal/model"
	"mirrorsync/internal/pathmap"
	"mirrorsync/internal/syncer"
	"mirrorsync/internal/util"

	"go.uber.org/zap"
)

var _ syncer.Syncer = (*Processor)(nil)

// Processor applies one creation event at a time. It keeps no memory of
// earlier events; the destination tree is re-read for every decision.
type Processor struct {
	mapper pathmap.Mapper
	log    *zap.Logger
}

func NewProcessor(src, dst string, log *zap.Logger) (*Processor, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("invalid src path: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("invalid dst path: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Processor{
		mapper: pathmap.New(absSrc, absDst),
		log:    log,
	}, nil
}

func (p *Processor) Src() string { return p.mapper.Src() }
func (p *Processor) Dst() string { return p.mapper.Dst() }

func (p *Processor) Run(inCh <-chan model.FileEvent) <-chan model.SyncResult {
	return syncer.RunLoop(inCh, p.Handle)
}

// Handle mirrors a single event and logs exactly one record for it.
// Failures are returned in the result, never propagated.
func (p *Processor) Handle(event model.FileEvent) model.SyncResult {
	result := model.SyncResult{
		Event:   event,
		SrcPath: event.Path,
	}

	decision, dst, err := p.apply(event)
	result.Decision = decision
	result.DstPath = dst

	if err != nil {
		result.Decision = model.DecisionFailed
		result.Err = err
	}

	p.report(result)
	return result
}

func (p *Processor) apply(event model.FileEvent) (model.Decision, string, error) {
	dst, err := p.mapper.Map(event.Path)
	if err != nil {
		return "", "", newSyncError("map", event.Path, err)
	}

	switch event.Kind {
	case model.DirectoryCreated:
		if err := os.MkdirAll(dst, 0755); err != nil {
			return "", dst, newSyncError("mkdir", dst, err)
		}
		return model.DecisionCreateDirectory, dst, nil

	case model.FileCreated:
		decision, err := p.syncFile(event.Path, dst)
		return decision, dst, err

	default:
		return "", dst, newSyncError("classify", event.Path, fmt.Errorf("unsupported event kind %q", event.Kind))
	}
}

func (p *Processor) syncFile(src, dst string) (model.Decision, error) {
	dstInfo, err := os.Stat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		if err := util.CopyFile(src, dst); err != nil {
			return "", newSyncError("copy", src, err)
		}
		return model.DecisionCopyMissing, nil
	}
	if err != nil {
		return "", newSyncError("stat", dst, err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", newSyncError("stat", src, err)
	}

	if srcInfo.ModTime().Equal(dstInfo.ModTime()) {
		return model.DecisionSkipUnchanged, nil
	}

	if err := util.CopyFile(src, dst); err != nil {
		return "", newSyncError("copy", src, err)
	}
	return model.DecisionCopyFile, nil
}

func (p *Processor) report(result model.SyncResult) {
	if result.Failed() {
		fields := []zap.Field{
			zap.String("event", string(result.Event.Kind)),
			zap.String("src", result.SrcPath),
			zap.Error(result.Err),
		}

		var syncErr *SyncError
		if errors.As(result.Err, &syncErr) {
			fields = append(fields,
				zap.String("op", syncErr.Op),
				zap.String("error_type", syncErr.Kind),
				zap.String("location", syncErr.Location))
		}

		p.log.Error("sync failed", fields...)
		return
	}

	var msg string
	switch result.Decision {
	case model.DecisionCreateDirectory:
		msg = "sync directory"
	case model.DecisionCopyFile:
		msg = "sync file"
	case model.DecisionCopyMissing:
		msg = "sync file (new)"
	case model.DecisionSkipUnchanged:
		msg = "skip: already synced"
	}

	p.log.Info(msg,
		zap.String("src", result.SrcPath),
		zap.String("dst", result.DstPath))
}
