package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Anvarmag/skladoptima/pkg/logger"
)

// slowRunner records concurrency so tests can assert cycles never overlap.
type slowRunner struct {
	mu      stdsync.Mutex
	delay   time.Duration
	err     error
	panics  bool
	runs    int
	active  int
	overlap bool
}

func (r *slowRunner) RunCycle(ctx context.Context) error {
	r.mu.Lock()
	r.runs++
	r.active++
	if r.active > 1 {
		r.overlap = true
	}
	r.mu.Unlock()

	if r.panics {
		panic("cycle blew up")
	}
	time.Sleep(r.delay)

	r.mu.Lock()
	r.active--
	r.mu.Unlock()
	return r.err
}

func (r *slowRunner) snapshot() (runs int, overlap bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs, r.overlap
}

func TestScheduler_CyclesNeverOverlap(t *testing.T) {
	// Each cycle takes several ticks; intermediate firings must be dropped,
	// never stacked.
	runner := &slowRunner{delay: 30 * time.Millisecond}
	s := NewScheduler(runner, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	runs, overlap := runner.snapshot()
	assert.False(t, overlap, "two cycles ran concurrently")
	assert.Greater(t, runs, 1)
	assert.Less(t, runs, 10) // far fewer runs than elapsed ticks
}

func TestScheduler_CycleErrorDoesNotStopLoop(t *testing.T) {
	runner := &slowRunner{err: errors.New("transient")}
	s := NewScheduler(runner, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	runs, _ := runner.snapshot()
	assert.Greater(t, runs, 1, "loop must keep firing after a failed cycle")
}

func TestScheduler_CyclePanicIsRecovered(t *testing.T) {
	runner := &slowRunner{panics: true}
	s := NewScheduler(runner, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	assert.NotPanics(t, func() { s.Run(ctx) })
	runs, _ := runner.snapshot()
	assert.Greater(t, runs, 1)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	runner := &slowRunner{}
	s := NewScheduler(runner, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
	runs, _ := runner.snapshot()
	assert.Equal(t, 0, runs)
}
