package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
	"github.com/RednibCoding/mudden-sub004/internal/queue"
)

const DefaultTickInterval = time.Second

// Distributor delivers a tick's updates to the transport layer.
type Distributor interface {
	Distribute(ctx context.Context, updates []*protocol.Update) error
}

// Scheduler owns wall-clock pacing of the simulation. Exactly one tick
// is ever in flight: the next tick is armed only after the current one
// completes, so an overrunning tick delays its successor rather than
// overlapping it.
type Scheduler struct {
	interval time.Duration
	queue    *queue.CommandQueue
	proc     *Processor
	dist     Distributor

	running atomic.Bool
	ticks   atomic.Uint64

	mu       sync.Mutex
	stop     chan struct{}
	loopDone chan struct{}
}

func NewScheduler(q *queue.CommandQueue, proc *Processor, dist Distributor, opts ...SchedulerOpt) *Scheduler {
	s := &Scheduler{
		interval: DefaultTickInterval,
		queue:    q,
		proc:     proc,
		dist:     dist,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Ticks returns the monotonic tick counter.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// Start runs the tick loop until the context is canceled or Stop is
// called. Calling Start while already running logs a warning and
// returns without scheduling a second loop; Start right after Stop
// waits for the old loop to wind down instead of refusing the restart.
func (s *Scheduler) Start(ctx context.Context) error {
	for !s.running.CompareAndSwap(false, true) {
		s.mu.Lock()
		stopRequested := s.stop == nil
		done := s.loopDone
		s.mu.Unlock()

		if !stopRequested || done == nil {
			slog.WarnContext(ctx, "scheduler already running, ignoring start")
			return nil
		}
		<-done
	}

	s.mu.Lock()
	s.stop = make(chan struct{})
	stop := s.stop
	loopDone := make(chan struct{})
	s.loopDone = loopDone
	s.mu.Unlock()

	defer func() {
		s.running.Store(false)
		close(loopDone)
	}()

	slog.InfoContext(ctx, "scheduler started", "interval", s.interval)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		case <-timer.C:
			s.runTick(ctx)
			// Arm the next tick only after this one finished.
			timer.Reset(s.interval)
		}
	}
}

// Stop cancels the pending tick and ends the loop. In-flight processing
// is allowed to finish. Safe to call more than once; a later Start runs
// a fresh loop against the same monotonic counter.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// runTick executes one drain/process/distribute cycle. A panic is
// logged and swallowed: the counter has already advanced and the next
// tick is still scheduled by the caller.
func (s *Scheduler) runTick(ctx context.Context) {
	tick := s.ticks.Add(1)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "tick panicked", "tick", tick, "panic", r)
		}
	}()

	batch := s.queue.Drain()
	updates := s.proc.Process(ctx, tick, batch)

	if err := s.dist.Distribute(ctx, updates); err != nil {
		slog.WarnContext(ctx, "distributing updates", "tick", tick, "error", err)
	}

	elapsed := time.Since(start)
	if elapsed > s.interval*8/10 {
		slog.WarnContext(ctx, "tick approaching interval budget",
			"tick", tick, "elapsed", elapsed, "interval", s.interval)
	}
	slog.DebugContext(ctx, "tick complete",
		"tick", tick, "commands", len(batch), "updates", len(updates), "elapsed", elapsed)
}
