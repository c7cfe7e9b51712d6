package daemon

import (
	"fmt"

	"mirrorsync/internal/mirror"
	"mirrorsync/internal/model"
	"mirrorsync/internal/pipeline"
	"mirrorsync/internal/repository"
	"mirrorsync/internal/syncer"

	"go.uber.org/zap"
)

// Runner drives source -> filter -> processor and records every result.
type Runner struct {
	src     syncer.EventSource
	matcher *pipeline.Matcher
	proc    syncer.Syncer
	repo    *repository.HistoryRepository
	state   *State
	log     *zap.Logger
	doneCh  chan struct{}
}

// NewRunner wires the pipeline. repo may be nil to skip history.
func NewRunner(src syncer.EventSource, matcher *pipeline.Matcher, proc *mirror.Processor, repo *repository.HistoryRepository, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{
		src:     src,
		matcher: matcher,
		proc:    proc,
		repo:    repo,
		state:   NewState(proc.Src(), proc.Dst()),
		log:     log,
		doneCh:  make(chan struct{}),
	}
}

func (r *Runner) Start() error {
	if err := r.src.Start(); err != nil {
		return fmt.Errorf("failed to start source: %w", err)
	}

	go r.run()
	return nil
}

func (r *Runner) run() {
	defer close(r.doneCh)

	filtered := pipeline.Filter(r.src.Events(), r.matcher, r.log)
	for result := range r.proc.Run(filtered) {
		r.state.Record(result)

		if r.repo == nil {
			continue
		}

		if err := r.repo.Save(result); err != nil {
			r.log.Warn("failed to save history",
				zap.String("src", result.SrcPath),
				zap.Error(err))
		}
	}
}

// Stop shuts the source down and waits for in-flight events to drain.
func (r *Runner) Stop() {
	r.src.Stop()
	<-r.doneCh
}

// Done is closed once the pipeline has drained.
func (r *Runner) Done() <-chan struct{} {
	return r.doneCh
}

func (r *Runner) Snapshot() model.Snapshot {
	return r.state.Snapshot()
}
