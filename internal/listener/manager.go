package listener

import (
	"context"
	"log/slog"

	"github.com/RednibCoding/mudden-sub004/internal/session"
)

// ConnectionManager hands accepted connections to the session registry.
type ConnectionManager struct {
	reg *session.Registry
}

func NewConnectionManager(reg *session.Registry) *ConnectionManager {
	return &ConnectionManager{
		reg: reg,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn session.Conn) {
	if err := m.reg.Serve(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
