// Package engine owns tick scheduling and batch command processing.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RednibCoding/mudden-sub004/internal/game"
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// HandlerFunc processes one command against world state and returns the
// updates it produced. Domain failures (no exit, item absent, ...) are
// reported as command_error updates in the return slice; a non-nil
// error means the handler itself broke and is converted into a generic
// command_error for the issuing player.
type HandlerFunc func(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error)

// Processor applies one tick's batch of commands in arrival order.
// Because the whole batch runs on the tick goroutine, the Nth handler
// observes the effects of commands 1..N-1 without any extra locking.
type Processor struct {
	world    *game.WorldState
	handlers map[protocol.CommandType]HandlerFunc
}

func NewProcessor(world *game.WorldState) *Processor {
	return &Processor{
		world:    world,
		handlers: make(map[protocol.CommandType]HandlerFunc),
	}
}

// Register binds a handler to a command type.
func (p *Processor) Register(t protocol.CommandType, fn HandlerFunc) error {
	if fn == nil {
		return fmt.Errorf("handler for %s cannot be nil", t)
	}
	if _, exists := p.handlers[t]; exists {
		return fmt.Errorf("handler for %s already registered", t)
	}
	p.handlers[t] = fn
	return nil
}

// Process runs the batch. One command's failure never aborts the rest:
// panics and errors become a command_error addressed to that command's
// issuer only. Commands from players who disconnected between enqueue
// and drain are dropped. Unknown command types are logged and skipped.
func (p *Processor) Process(ctx context.Context, tick uint64, batch []*protocol.Command) []*protocol.Update {
	var updates []*protocol.Update

	for _, cmd := range batch {
		if p.world.GetPlayer(cmd.PlayerId) == nil {
			slog.DebugContext(ctx, "dropping command from departed player",
				"tick", tick, "player", cmd.PlayerId, "type", cmd.Type)
			continue
		}

		handler, ok := p.handlers[cmd.Type]
		if !ok {
			slog.WarnContext(ctx, "no handler for command type",
				"tick", tick, "type", cmd.Type)
			continue
		}

		produced, err := p.run(ctx, handler, cmd)
		if err != nil {
			slog.ErrorContext(ctx, "command handler failed",
				"tick", tick, "player", cmd.PlayerId, "type", cmd.Type, "error", err)
			updates = append(updates,
				protocol.NewCommandError(cmd.PlayerId, cmd.CommandId, protocol.ReasonInternal, ""))
			continue
		}
		updates = append(updates, produced...)
	}

	return updates
}

func (p *Processor) run(ctx context.Context, handler HandlerFunc, cmd *protocol.Command) (updates []*protocol.Update, err error) {
	defer func() {
		if r := recover(); r != nil {
			updates = nil
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return handler(ctx, cmd)
}
