package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner repeats cycles forever with a fixed sleep between them. A fatal
// cycle error stops the loop so the process can exit and be restarted by its
// supervisor with a clean slate.
type Runner struct {
	pipeline *Pipeline
	interval time.Duration
	logger   *zap.Logger
}

// NewRunner builds a Runner around a pipeline.
func NewRunner(pipeline *Pipeline, interval time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{pipeline: pipeline, interval: interval, logger: logger}
}

// Run loops until the context is cancelled or a cycle fails fatally.
func (r *Runner) Run(ctx context.Context) error {
	for {
		r.logger.Info("cycle starting")
		if err := r.pipeline.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		r.logger.Info("cycle complete", zap.Duration("sleep", r.interval))

		timer := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
