package tetris

import (
	"context"
	"sync"
	"time"
)

// SchedulerStats provides statistics about gravity ticks.
type SchedulerStats struct {
	Ticks        int64
	Runs         int64
	Discarded    int64
	LastInterval time.Duration
	MinLatency   time.Duration
	MaxLatency   time.Duration
	AvgLatency   time.Duration
}

type schedulerStatsInternal struct {
	ticks        int64
	runs         int64
	discarded    int64
	lastInterval time.Duration
	minLatency   time.Duration
	maxLatency   time.Duration
	totalLatency time.Duration
}

// Scheduler runs gravity for an engine on the wall clock and serializes every
// access to it. While the engine is running a single goroutine fires Tick at
// the current drop interval. The goroutine is cancelled as soon as the engine
// leaves Running, and a fresh timing baseline starts when it comes back.
type Scheduler struct {
	mu     sync.Mutex
	engine *Engine
	onTick func()

	ctx    context.Context
	stop   context.CancelFunc
	cancel context.CancelFunc
	// epoch of the engine run the gravity goroutine belongs to.
	epoch uint64
	wg    sync.WaitGroup

	stats schedulerStatsInternal
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithTickObserver registers fn to be called after every gravity tick,
// outside the engine lock.
func WithTickObserver(fn func()) SchedulerOption {
	return func(s *Scheduler) { s.onTick = fn }
}

// NewScheduler creates a scheduler for the given engine.
func NewScheduler(engine *Engine, opts ...SchedulerOption) *Scheduler {
	ctx, stop := context.WithCancel(context.Background())
	s := &Scheduler{
		engine: engine,
		ctx:    ctx,
		stop:   stop,
		stats:  schedulerStatsInternal{minLatency: time.Duration(1<<63 - 1)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Do runs fn with exclusive access to the engine, then starts or stops the
// gravity loop to match the resulting state.
func (s *Scheduler) Do(fn func(e *Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.engine)
	s.syncLocked()
}

// Apply runs a single command under the scheduler lock.
func (s *Scheduler) Apply(c Command) bool {
	var ok bool
	s.Do(func(e *Engine) { ok = e.Apply(c) })
	return ok
}

// Snapshot returns a consistent snapshot of the engine.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Close stops the gravity loop and waits for it to exit.
func (s *Scheduler) Close() {
	s.stop()
	s.mu.Lock()
	s.cancel = nil
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Scheduler) syncLocked() {
	running := s.engine.State() == Running
	if s.cancel != nil && (!running || s.engine.Epoch() != s.epoch) {
		s.cancel()
		s.cancel = nil
	}
	if running && s.cancel == nil && s.ctx.Err() == nil {
		ctx, cancel := context.WithCancel(s.ctx)
		s.cancel = cancel
		s.epoch = s.engine.Epoch()
		s.stats.runs++
		s.wg.Add(1)
		go s.run(ctx)
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	s.mu.Lock()
	interval := s.engine.DropInterval()
	s.mu.Unlock()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-timer.C:
			s.mu.Lock()
			if ctx.Err() != nil {
				s.stats.discarded++
				s.mu.Unlock()
				return
			}

			elapsed := now.Sub(last)
			last = now
			s.engine.Tick(elapsed)
			s.recordLocked(interval, elapsed)

			if s.engine.State() != Running {
				s.cancel()
				s.cancel = nil
				s.mu.Unlock()
				s.notify()
				return
			}

			interval = s.engine.DropInterval()
			s.mu.Unlock()

			s.notify()
			timer.Reset(interval)
		}
	}
}

func (s *Scheduler) notify() {
	if s.onTick != nil {
		s.onTick()
	}
}

func (s *Scheduler) recordLocked(interval, elapsed time.Duration) {
	latency := max(elapsed-interval, 0)
	s.stats.ticks++
	s.stats.lastInterval = interval
	s.stats.totalLatency += latency
	if latency < s.stats.minLatency {
		s.stats.minLatency = latency
	}
	if latency > s.stats.maxLatency {
		s.stats.maxLatency = latency
	}
}

// Stats returns statistics about the ticks fired so far.
func (s *Scheduler) Stats() SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := SchedulerStats{
		Ticks:        s.stats.ticks,
		Runs:         s.stats.runs,
		Discarded:    s.stats.discarded,
		LastInterval: s.stats.lastInterval,
		MaxLatency:   s.stats.maxLatency,
	}
	if s.stats.ticks > 0 {
		stats.MinLatency = s.stats.minLatency
		stats.AvgLatency = s.stats.totalLatency / time.Duration(s.stats.ticks)
	}
	return stats
}
