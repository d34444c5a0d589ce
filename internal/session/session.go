package session

import (
	"github.com/google/uuid"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

const sendBuffer = 64

// Conn is one transport connection speaking whole frames. Listeners
// adapt their wire format (websocket messages, JSON lines) to this.
type Conn interface {
	// ReadFrame blocks for the next inbound frame.
	ReadFrame() ([]byte, error)
	// WriteFrame sends one outbound frame.
	WriteFrame(data []byte) error
	Close() error
}

// Session binds one authenticated player to one live connection.
type Session struct {
	Id       string
	PlayerId string
	Name     string

	conn Conn
	send chan []byte
	done chan struct{}

	// unsub is guarded by the registry mutex: eviction and release both
	// want to tear down the subscription, and it must run exactly once.
	unsub func()
}

func newSession(playerId, name string, conn Conn) *Session {
	return &Session{
		Id:       uuid.New().String(),
		PlayerId: playerId,
		Name:     name,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// Done is closed when the session is evicted by a newer login.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Kick signals eviction. Safe to call more than once.
func (s *Session) Kick() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// enqueue hands a frame to the write pump without blocking. A full
// buffer drops the frame: the tick loop must never wait on a slow
// client, and the client re-synchronizes with its next read command.
func (s *Session) enqueue(data []byte) bool {
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

// enqueueError queues a submission-time rejection frame to the sender.
// These never touch the tick: the command was refused before queuing.
func (s *Session) enqueueError(commandId string, reason protocol.Reason) {
	data, err := protocol.EncodeError(commandId, reason)
	if err != nil {
		return
	}
	s.enqueue(data)
}
