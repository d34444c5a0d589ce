package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
	"github.com/RednibCoding/mudden-sub004/internal/queue"
)

// recordingDistributor captures every distributed batch.
type recordingDistributor struct {
	mu      sync.Mutex
	batches [][]*protocol.Update
}

func (d *recordingDistributor) Distribute(ctx context.Context, updates []*protocol.Update) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.batches = append(d.batches, updates)
	return nil
}

func (d *recordingDistributor) updateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, b := range d.batches {
		n += len(b)
	}
	return n
}

func newTestScheduler(t *testing.T) (*Scheduler, *queue.CommandQueue, *recordingDistributor) {
	t.Helper()

	w := newEngineWorld(t, "alice")
	proc := NewProcessor(w)
	err := proc.Register(protocol.CommandSay, func(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
		return []*protocol.Update{
			protocol.NewUpdate(protocol.UpdateServerMessage, &protocol.ServerMessageData{Text: "ok"}, cmd.PlayerId),
		}, nil
	})
	if err != nil {
		t.Fatalf("registering handler: %v", err)
	}

	q := queue.NewCommandQueue()
	dist := &recordingDistributor{}
	s := NewScheduler(q, proc, dist, WithTickInterval(10*time.Millisecond))
	return s, q, dist
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestScheduler_ProcessesQueuedCommands(t *testing.T) {
	s, q, dist := newTestScheduler(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	q.Add(sayCommand("alice", "c-1"))

	// Each accepted command produces exactly one update, exactly once.
	waitFor(t, func() bool { return dist.updateCount() >= 1 })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "update count", dist.updateCount(), 1)
	testutil.AssertEqual(t, "queue backlog", q.Len(), 0)
}

func TestScheduler_TicksWithEmptyQueue(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	// Ticks advance even when no commands arrive.
	waitFor(t, func() bool { return s.Ticks() >= 3 })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScheduler_StopStart(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	waitFor(t, func() bool { return s.Ticks() >= 2 })

	s.Stop()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stopped := s.Ticks()

	// A restarted scheduler continues the monotonic counter.
	go func() { done <- s.Start(ctx) }()
	waitFor(t, func() bool { return s.Ticks() > stopped })

	s.Stop()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScheduler_OverrunDelaysNextTick(t *testing.T) {
	w := newEngineWorld(t, "alice")
	proc := NewProcessor(w)

	var inFlight atomic.Int32
	var overlapped atomic.Bool
	var processed atomic.Int32
	err := proc.Register(protocol.CommandSay, func(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		processed.Add(1)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("registering handler: %v", err)
	}

	q := queue.NewCommandQueue()
	s := NewScheduler(q, proc, &recordingDistributor{}, WithTickInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	// Every tick overruns its interval; commands fed while a tick is
	// processing run in a later tick, never concurrently with it.
	for i := int32(1); i <= 3; i++ {
		q.Add(sayCommand("alice", fmt.Sprintf("c-%d", i)))
		waitFor(t, func() bool { return processed.Load() >= i })
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overlapped.Load() {
		t.Error("two ticks ran concurrently")
	}
	testutil.AssertEqual(t, "processed commands", processed.Load(), int32(3))
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	ctx := context.Background()

	done := make(chan error, 20)
	go func() { done <- s.Start(ctx) }()
	waitFor(t, func() bool { return s.Ticks() >= 1 })

	// Start right on the heels of Stop must take over from the old
	// loop rather than being refused while it winds down.
	for i := 0; i < 19; i++ {
		stopped := s.Ticks()
		s.Stop()
		go func() { done <- s.Start(ctx) }()
		waitFor(t, func() bool { return s.Ticks() > stopped })
	}

	s.Stop()
	for i := 0; i < 20; i++ {
		if err := <-done; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestScheduler_DoubleStart(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	waitFor(t, func() bool { return s.Ticks() >= 1 })

	// A second Start is refused without disturbing the running loop.
	err := s.Start(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := s.Ticks()
	waitFor(t, func() bool { return s.Ticks() > before })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScheduler_DoubleStop(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()
	waitFor(t, func() bool { return s.Ticks() >= 1 })

	s.Stop()
	s.Stop()

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
