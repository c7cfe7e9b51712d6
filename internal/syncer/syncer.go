package syncer

import (
	"mirrorsync/internal/model"
)

// EventSource delivers creation events until stopped; Events is closed
// once the source shuts down.
type EventSource interface {
	Events() <-chan model.FileEvent
	Start() error
	Stop()
}

type Syncer interface {
	Run(inCh <-chan model.FileEvent) <-chan model.SyncResult
}

// RunLoop handles events strictly one after another on a single goroutine.
func RunLoop(inCh <-chan model.FileEvent, handle func(model.FileEvent) model.SyncResult) <-chan model.SyncResult {
	outCh := make(chan model.SyncResult, cap(inCh))

	go func() {
		defer close(outCh)
		for event := range inCh {
			outCh <- handle(event)
		}
	}()

	return outCh
}
