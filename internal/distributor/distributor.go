// Package distributor fans a tick's updates out to the players they
// affect, one batched frame per player per tick.
package distributor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/RednibCoding/mudden-sub004/internal/messaging"
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// Publisher sends raw bytes to a subject. Publishing to a subject with
// no subscriber is a successful no-op, which is exactly the semantics
// needed for players who disconnected mid-tick.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type Distributor struct {
	pub Publisher
}

func NewDistributor(pub Publisher) *Distributor {
	return &Distributor{pub: pub}
}

// Distribute groups updates by affected player and publishes one frame
// per player. Delivery failures for one player never block another's;
// undelivered frames are dropped, never queued or retried.
func (d *Distributor) Distribute(ctx context.Context, updates []*protocol.Update) error {
	perPlayer := make(map[string][]*protocol.Update)
	var order []string

	for _, u := range updates {
		for _, playerId := range u.AffectedPlayers {
			if _, seen := perPlayer[playerId]; !seen {
				order = append(order, playerId)
			}
			perPlayer[playerId] = append(perPlayer[playerId], u)
		}
	}
	sort.Strings(order)

	var firstErr error
	for _, playerId := range order {
		data, err := protocol.EncodeOutbound(perPlayer[playerId])
		if err != nil {
			slog.WarnContext(ctx, "encoding update frame", "player", playerId, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("encoding frame for %s: %w", playerId, err)
			}
			continue
		}

		if err := d.pub.Publish(messaging.PlayerSubject(playerId), data); err != nil {
			slog.WarnContext(ctx, "publishing update frame", "player", playerId, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("publishing frame for %s: %w", playerId, err)
			}
		}
	}

	return firstErr
}
