package channel

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

var writeTimeout = time.Second * 5

// Conn is the subset of *websocket.Conn the registry needs. Sends are
// best-effort: a connection that fails a write is dropped and closed.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Payload is the wire shape pushed to connected clients.
type Payload struct {
	Id        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// entry owns one registered connection. The websocket transport allows
// a single concurrent writer per connection, so every write goes
// through the entry's mutex.
type entry struct {
	mtx  sync.Mutex
	conn Conn
}

func (e *entry) send(data []byte) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return e.conn.WriteMessage(websocket.TextMessage, data)
}

// Registry maps account ids to their live connections. It is purely
// in-memory and rebuilt from scratch on restart; an account may hold
// any number of concurrent connections.
type Registry struct {
	mtx   sync.RWMutex
	conns map[int64][]*entry
}

func NewRegistry() *Registry {
	log.Info().Msg("Initialized realtime channel registry")
	return &Registry{
		conns: make(map[int64][]*entry),
	}
}

func (r *Registry) Register(accountId int64, conn Conn) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.conns[accountId] = append(r.conns[accountId], &entry{conn: conn})
}

// Unregister removes exactly that connection. Removing a connection
// that is already gone is a no-op: connections may close concurrently
// with delivery attempts.
func (r *Registry) Unregister(accountId int64, conn Conn) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entries := r.conns[accountId]
	for i, e := range entries {
		if e.conn == conn {
			r.conns[accountId] = append(entries[:i], entries[i+1:]...)
			break
		}
	}

	if len(r.conns[accountId]) == 0 {
		delete(r.conns, accountId)
	}
}

func (r *Registry) drop(accountId int64, target *entry) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	entries := r.conns[accountId]
	for i, e := range entries {
		if e == target {
			r.conns[accountId] = append(entries[:i], entries[i+1:]...)
			break
		}
	}

	if len(r.conns[accountId]) == 0 {
		delete(r.conns, accountId)
	}
}

// Connections reports the number of live connections for an account.
func (r *Registry) Connections(accountId int64) int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return len(r.conns[accountId])
}

// SendNotification fans the payload out to every live connection of the
// account. Delivery is at-most-once: a write failure on one connection
// neither stops delivery to the others nor surfaces to the caller, and
// zero connections is a trivial success. Writes happen outside the
// registry lock with a bounded deadline so a stalled connection cannot
// block other accounts or the triggering request; concurrent sends to
// the same account serialize per connection through its entry mutex.
func (r *Registry) SendNotification(accountId int64, payload Payload) error {
	r.mtx.RLock()
	targets := append([]*entry(nil), r.conns[accountId]...)
	r.mtx.RUnlock()

	if len(targets) == 0 {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	for _, e := range targets {
		if err := e.send(body); err != nil {
			log.Warn().Err(err).Int64("account", accountId).Msg("Dropping dead realtime connection")
			r.drop(accountId, e)
			e.conn.Close()
		}
	}

	return nil
}

// Close tears down every connection; used on shutdown.
func (r *Registry) Close() {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, entries := range r.conns {
		for _, e := range entries {
			e.conn.Close()
		}
	}
	r.conns = make(map[int64][]*entry)
}
