package sync

import (
	"context"
	"time"

	"github.com/Anvarmag/skladoptima/pkg/logger"
)

// CycleRunner is the unit of work the scheduler drives once per tick.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// Scheduler fires reconciliation cycles on a fixed period from a single
// goroutine. Because a cycle runs to completion before the loop selects on
// the ticker again, cycles never overlap: a cycle that overruns the period
// simply delays the next one (intermediate ticks are dropped by time.Ticker).
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	log      *logger.Logger
}

// NewScheduler builds the scheduler. interval must be positive.
func NewScheduler(runner CycleRunner, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{runner: runner, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, executing one cycle per tick.
// Typically launched as `go scheduler.Run(ctx)` from main.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("sync scheduler started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sync scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single cycle. Any failure, including a panic, ends the
// cycle early and is logged; the next scheduled firing proceeds independently.
func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("sync cycle panicked")
		}
	}()

	started := time.Now()
	s.log.Debug().Msg("sync cycle started")
	if err := s.runner.RunCycle(ctx); err != nil {
		s.log.Error().Err(err).Msg("sync cycle aborted")
		return
	}
	s.log.Info().Dur("took", time.Since(started)).Msg("sync cycle finished")
}
