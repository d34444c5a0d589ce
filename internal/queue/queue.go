// Package queue buffers commands arriving between ticks. It is the one
// structure shared between connection goroutines and the tick loop, so
// Add and Drain must be safe to call concurrently.
package queue

import (
	"sync"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// CommandQueue is a strict-FIFO buffer of accepted commands. Commands
// added while a drain is in progress land in the next batch, never the
// current one.
type CommandQueue struct {
	mu      sync.Mutex
	pending []*protocol.Command
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Add appends a command in arrival order.
func (q *CommandQueue) Add(cmd *protocol.Command) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, cmd)
}

// Drain atomically takes the full pending buffer, leaving the queue
// empty. No command is ever returned twice.
func (q *CommandQueue) Drain() []*protocol.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := q.pending
	q.pending = nil
	return batch
}

// Len reports the current backlog, for monitoring only.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}
