// Package sampler drives the periodic metric-collection pass. Sampling is
// unconditional: it keeps running while the overlay is hidden so a toggle to
// visible always has data at most one interval old.
package sampler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"syshud/internal/models"
	"syshud/internal/utils"
)

// Interval between sampling ticks. Frequent enough to read as live, spaced
// enough that CPU sampling and GPU tool spawns do not interfere with the
// numbers they measure.
const Interval = 2 * time.Second

// Sampler runs Collect on a fixed cadence and hands each Snapshot to the
// publish callback. All passes run on one goroutine, so a pass that overruns
// its interval delays the next tick instead of overlapping it; ticks that
// fire mid-pass are dropped by the ticker, never queued.
type Sampler struct {
	interval time.Duration
	collect  Collector
	publish  func(models.Snapshot)
	log      *utils.Logger

	mu     sync.Mutex
	stop   chan struct{}
	wg     sync.WaitGroup
	latest *models.Snapshot
	ticks  atomic.Uint64
}

// New creates a Sampler. publish is invoked once per tick from the sampling
// goroutine; callers needing another execution context marshal it themselves.
func New(collect Collector, publish func(models.Snapshot), log *utils.Logger) *Sampler {
	return &Sampler{
		interval: Interval,
		collect:  collect,
		publish:  publish,
		log:      log,
	}
}

// Start launches the sampling loop with an immediate first pass. Calling
// Start on a running Sampler is a no-op.
func (s *Sampler) Start() {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		ctx := context.Background()
		s.sample(ctx)
		for {
			select {
			case <-ticker.C:
				s.sample(ctx)
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the sampling loop and waits for any in-flight pass. Idempotent,
// and safe to call on a Sampler that was never started.
func (s *Sampler) Stop() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	s.wg.Wait()
}

// sample runs one collection pass. A Snapshot is published on every tick;
// a panicking source costs that tick its publish but never the loop.
func (s *Sampler) sample(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil && s.log != nil {
			s.log.Writef("sampling tick panicked: %v", r)
		}
	}()

	snap := s.collect.Collect(ctx)

	s.mu.Lock()
	s.latest = &snap
	s.mu.Unlock()
	s.ticks.Add(1)

	if s.publish != nil {
		s.publish(snap)
	}
}

// Latest returns the most recent Snapshot, if any tick has completed.
func (s *Sampler) Latest() (models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return models.Snapshot{}, false
	}
	return *s.latest, true
}

// Ticks reports how many sampling passes have completed.
func (s *Sampler) Ticks() uint64 {
	return s.ticks.Load()
}
