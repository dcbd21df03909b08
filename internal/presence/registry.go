package presence

import (
	"sync"

	"github.com/google/uuid"
)

// Conn is one live realtime connection. A user may hold several at
// once (multiple tabs or devices).
type Conn interface {
	ID() uuid.UUID
	// Push enqueues data for delivery without blocking. It returns an
	// error when the connection cannot accept more data.
	Push(data []byte) error
	Close()
}

// Registry maps user ids to their currently open connections. A user
// with no entry is offline. All methods are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]map[uuid.UUID]Conn
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[uuid.UUID]map[uuid.UUID]Conn),
	}
}

// Register adds conn to the user's set. Registering the same
// connection twice is a no-op.
func (r *Registry) Register(userID uuid.UUID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[userID]; !ok {
		r.conns[userID] = make(map[uuid.UUID]Conn)
	}
	r.conns[userID][conn.ID()] = conn
}

// Unregister removes conn from the user's set and drops the entry when
// the set becomes empty. Unregistering an unknown connection is a
// no-op, so duplicate or late disconnect signals are harmless.
func (r *Registry) Unregister(userID uuid.UUID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userConns, ok := r.conns[userID]
	if !ok {
		return
	}
	delete(userConns, conn.ID())
	if len(userConns) == 0 {
		delete(r.conns, userID)
	}
}

// ConnectionsFor resolves each requested user to their live
// connections. Offline users simply contribute nothing.
func (r *Registry) ConnectionsFor(userIDs []uuid.UUID) map[uuid.UUID][]Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[uuid.UUID][]Conn)
	for _, userID := range userIDs {
		userConns, ok := r.conns[userID]
		if !ok {
			continue
		}
		conns := make([]Conn, 0, len(userConns))
		for _, c := range userConns {
			conns = append(conns, c)
		}
		result[userID] = conns
	}
	return result
}

// Online reports whether the user has at least one open connection.
func (r *Registry) Online(userID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

// OnlineUsers returns every user with at least one open connection.
func (r *Registry) OnlineUsers() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(r.conns))
	for userID := range r.conns {
		users = append(users, userID)
	}
	return users
}
