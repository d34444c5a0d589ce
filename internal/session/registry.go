// Package session binds authenticated player identities to live
// connections. It is the transport-facing edge of the core: inbound
// frames become validated commands, outbound update frames arrive over
// the message bus and are written to the right connection.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RednibCoding/mudden-sub004/internal/game"
	"github.com/RednibCoding/mudden-sub004/internal/messaging"
	"github.com/RednibCoding/mudden-sub004/internal/protocol"
	"github.com/RednibCoding/mudden-sub004/internal/queue"
	"github.com/RednibCoding/mudden-sub004/internal/storage"
)

// Frames rejected before authentication succeeds, per connection,
// before the connection is dropped.
const maxUnauthedFrames = 3

var ErrAuthFailed = errors.New("authentication failed")

var titleCaser = cases.Title(language.English)

// Bus carries outbound update frames from the tick loop to sessions.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

type Registry struct {
	world *game.WorldState
	chars storage.Storer[*game.Character]
	queue *queue.CommandQueue
	bus   Bus

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(world *game.WorldState, chars storage.Storer[*game.Character], q *queue.CommandQueue, bus Bus) *Registry {
	return &Registry{
		world:    world,
		chars:    chars,
		queue:    q,
		sessions: make(map[string]*Session),
		bus:      bus,
	}
}

// Session returns the live session for a player, or nil.
func (r *Registry) Session(playerId string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[playerId]
}

// Serve owns one connection for its whole life: authenticate, bind,
// pump frames both ways, release on disconnect.
func (r *Registry) Serve(ctx context.Context, conn Conn) error {
	defer conn.Close()

	sess, err := r.authenticate(conn)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "player connected", "player", sess.PlayerId, "session", sess.Id)

	unsub, err := r.bus.Subscribe(messaging.PlayerSubject(sess.PlayerId), func(data []byte) {
		if !sess.enqueue(data) {
			slog.WarnContext(ctx, "send buffer full, dropping frame", "player", sess.PlayerId)
		}
	})
	if err != nil {
		r.release(sess)
		return fmt.Errorf("subscribing to player subject: %w", err)
	}
	r.mu.Lock()
	sess.unsub = unsub
	r.mu.Unlock()

	// Write pump: drains the send buffer onto the connection.
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sess.done:
				return
			case data := <-sess.send:
				if err := sess.conn.WriteFrame(data); err != nil {
					return
				}
			}
		}
	}()

	r.sendWelcome(sess)

	err = r.readLoop(ctx, sess)

	r.release(sess)
	<-writeDone

	slog.InfoContext(ctx, "player disconnected", "player", sess.PlayerId, "session", sess.Id)
	return err
}

// authenticate requires the first well-formed frame to be an auth
// command and verifies it against the character store. A name that has
// never logged in creates a new character.
func (r *Registry) authenticate(conn Conn) (*Session, error) {
	rejected := 0

	for {
		data, err := conn.ReadFrame()
		if err != nil {
			return nil, fmt.Errorf("reading auth frame: %w", err)
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			if rejected = rejected + 1; rejected >= maxUnauthedFrames {
				return nil, ErrAuthFailed
			}
			r.writeError(conn, "", rejectionReason(err))
			continue
		}

		if frame.Type != protocol.CommandAuth {
			if rejected = rejected + 1; rejected >= maxUnauthedFrames {
				return nil, ErrAuthFailed
			}
			r.writeError(conn, frame.CommandId, protocol.ReasonNotAuthenticated)
			continue
		}

		cmd, err := protocol.ParseCommand("", frame)
		if err != nil {
			if rejected = rejected + 1; rejected >= maxUnauthedFrames {
				return nil, ErrAuthFailed
			}
			r.writeError(conn, frame.CommandId, protocol.ReasonInvalidPayload)
			continue
		}

		payload := cmd.Payload.(*protocol.AuthPayload)
		sess, err := r.login(payload, conn)
		if err != nil {
			r.writeError(conn, frame.CommandId, protocol.ReasonAuthFailed)
			return nil, err
		}
		return sess, nil
	}
}

func (r *Registry) login(payload *protocol.AuthPayload, conn Conn) (*Session, error) {
	playerId := strings.ToLower(payload.Name)
	name := titleCaser.String(playerId)

	char := r.chars.Get(playerId)
	if char == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		char = &game.Character{
			Name:         name,
			PasswordHash: string(hash),
			Stats:        game.DefaultStats(),
		}
		if err := r.chars.Save(playerId, char); err != nil {
			return nil, fmt.Errorf("saving new character: %w", err)
		}
	} else {
		if err := bcrypt.CompareHashAndPassword([]byte(char.PasswordHash), []byte(payload.Password)); err != nil {
			return nil, ErrAuthFailed
		}
	}

	sess := newSession(playerId, char.Name, conn)

	// World placement and session bind happen in one critical section:
	// two simultaneous logins for the same name must serialize here, or
	// the loser could tear down the winner's state and strand the
	// player in the world with no session.
	r.mu.Lock()
	if r.world.GetPlayer(playerId) == nil {
		if _, err := r.world.AddPlayer(playerId, char); err != nil {
			r.mu.Unlock()
			return nil, fmt.Errorf("adding player to world: %w", err)
		}
	}
	prev := r.sessions[playerId]
	var prevUnsub func()
	if prev != nil {
		prevUnsub = prev.unsub
		prev.unsub = nil
	}
	r.sessions[playerId] = sess
	r.mu.Unlock()

	// A second login takes over: the old connection is kicked but the
	// player stays in the world for the new session.
	if prev != nil {
		if prevUnsub != nil {
			prevUnsub()
		}
		prev.Kick()
	}

	return sess, nil
}

// readLoop turns inbound frames into queued commands until the
// connection drops, the context ends, or the session is evicted.
func (r *Registry) readLoop(ctx context.Context, sess *Session) error {
	frames := make(chan []byte)
	readErr := make(chan error, 1)
	quit := make(chan struct{})
	defer close(quit)

	// The reader must never block on a frame nobody will receive: once
	// this loop returns, quit releases it even with a frame in flight.
	go func() {
		for {
			data, err := sess.conn.ReadFrame()
			if err != nil {
				readErr <- err
				close(frames)
				return
			}
			select {
			case frames <- data:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-sess.done:
			return nil

		case data, ok := <-frames:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}

			frame, err := protocol.DecodeFrame(data)
			if err != nil {
				sess.enqueueError("", rejectionReason(err))
				continue
			}
			if frame.Type == protocol.CommandAuth {
				// Already authenticated; re-auth on a live session is a
				// protocol violation, not a crash.
				sess.enqueueError(frame.CommandId, protocol.ReasonInvalidPayload)
				continue
			}

			cmd, err := protocol.ParseCommand(sess.PlayerId, frame)
			if err != nil {
				sess.enqueueError(frame.CommandId, rejectionReason(err))
				continue
			}

			r.queue.Add(cmd)
		}
	}
}

// release unbinds the session and, unless a newer session took over,
// removes the player from the world and persists their character.
func (r *Registry) release(sess *Session) {
	// Eviction may have claimed the unsubscribe already; whoever takes
	// it under the lock runs it exactly once.
	r.mu.Lock()
	unsub := sess.unsub
	sess.unsub = nil
	current := r.sessions[sess.PlayerId]
	if current == sess {
		delete(r.sessions, sess.PlayerId)
	}
	r.mu.Unlock()

	if unsub != nil {
		unsub()
	}

	if current != sess {
		// Evicted by a reconnect; the player stays in the world.
		return
	}

	r.OnDisconnect(sess.PlayerId)
}

// OnDisconnect removes a player from the world and saves their
// character. Commands they queued but that have not been drained yet
// are dropped by the processor, not executed against a ghost.
func (r *Registry) OnDisconnect(playerId string) {
	ps := r.world.GetPlayer(playerId)
	if ps == nil {
		return
	}

	char := r.chars.Get(playerId)
	if char != nil {
		char.RoomId = ps.RoomId
		char.Stats = ps.Stats
		if err := r.chars.Save(playerId, char); err != nil {
			slog.Warn("saving character on disconnect", "player", playerId, "error", err)
		}
	}

	if err := r.world.RemovePlayer(playerId); err != nil {
		slog.Warn("removing player from world", "player", playerId, "error", err)
	}
}

// sendWelcome pushes the initial room view directly onto the session,
// bypassing the tick: a player should not stare at a blank screen for
// up to one interval after logging in.
func (r *Registry) sendWelcome(sess *Session) {
	ps := r.world.GetPlayer(sess.PlayerId)
	if ps == nil {
		return
	}

	room, reason := r.world.SnapshotRoom(ps.RoomId, sess.PlayerId)
	if reason != protocol.ReasonNone {
		return
	}

	updates := []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateServerMessage, &protocol.ServerMessageData{
			Text: fmt.Sprintf("Welcome, %s.", sess.Name),
		}, sess.PlayerId),
		protocol.NewUpdate(protocol.UpdateRoomState, room, sess.PlayerId),
	}

	data, err := protocol.EncodeOutbound(updates)
	if err != nil {
		return
	}
	sess.enqueue(data)
}

// rejectionReason maps a frame decode/parse failure to its wire code.
func rejectionReason(err error) protocol.Reason {
	if errors.Is(err, protocol.ErrUnknownCommand) {
		return protocol.ReasonUnknownCommand
	}
	return protocol.ReasonInvalidPayload
}

func (r *Registry) writeError(conn Conn, commandId string, reason protocol.Reason) {
	data, err := protocol.EncodeError(commandId, reason)
	if err != nil {
		return
	}
	if err := conn.WriteFrame(data); err != nil {
		slog.Debug("writing error frame", "error", err)
	}
}
