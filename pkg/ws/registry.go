package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one live websocket connection for one user. Payloads pushed to
// the user are queued on Send and written by the connection's write pump.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Registry maps each identity to its single live connection. It is the only
// process-wide shared mutable state in the service, so it is owned here and
// injected where needed instead of living as a package global.
//
// One connection per user: attaching a second connection for the same
// identity supersedes the first.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Attach registers a client for its user. A previously attached client for
// the same user is superseded: its send channel is closed so its write pump
// exits.
func (r *Registry) Attach(userID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.clients[userID]; ok && prev != client {
		close(prev.Send)
	}
	r.clients[userID] = client
}

// Detach removes the client if it is still the user's current connection.
// Detaching a superseded or never-attached client is a no-op, so a stale
// connection's teardown cannot evict its replacement.
func (r *Registry) Detach(userID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.clients[userID]; ok && current == client {
		close(current.Send)
		delete(r.clients, userID)
	}
}

// Push attempts best-effort delivery to the user's live connection and
// reports whether the payload was handed to it. No connection, a superseded
// connection or a full send queue all simply report false: an offline
// recipient is a normal condition, not an error.
//
// The send runs under the read lock and channels are only closed under the
// write lock, so Push can never send on a closed channel.
func (r *Registry) Push(userID string, payload []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[userID]
	if !ok {
		return false
	}
	select {
	case client.Send <- payload:
		return true
	default:
		return false
	}
}

// IsConnected reports whether the user has a live connection.
func (r *Registry) IsConnected(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[userID]
	return ok
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
