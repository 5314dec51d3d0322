package ws

import (
	"context"
	"encoding/json"
	"sync"

	"collabex_backend/internal/logger"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
)

const sendBuffer = 64

// Hub tracks live connections per user and implements Publisher on top of
// a Broker.
type Hub struct {
	broker Broker
	// user id -> connection id -> send channel
	users *xsync.MapOf[string, *xsync.MapOf[string, chan []byte]]
	// serializes Register and Unregister so an emptied user entry is never
	// removed while a new connection is being added to it
	mu sync.Mutex
}

func NewHub(broker Broker) *Hub {
	return &Hub{
		broker: broker,
		users:  xsync.NewMapOf[*xsync.MapOf[string, chan []byte]](),
	}
}

// Run pumps broker envelopes to local connections until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	return h.broker.Run(ctx, h.deliver)
}

// Publish implements Publisher.
func (h *Hub) Publish(ctx context.Context, userID string, event Event) error {
	return h.broker.Publish(ctx, Envelope{UserID: userID, Event: event})
}

// Register adds a connection for userID and returns its id and the channel
// to drain.
func (h *Hub) Register(userID string) (string, <-chan []byte) {
	connID := uuid.NewString()
	ch := make(chan []byte, sendBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	conns, _ := h.users.LoadOrStore(userID, xsync.NewMapOf[chan []byte]())
	conns.Store(connID, ch)
	return connID, ch
}

// Unregister removes a connection and drops the user entry once it has no
// connections left. The channel is left open since a concurrent deliver may
// still hold it.
func (h *Hub) Unregister(userID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.users.Load(userID)
	if !ok {
		return
	}
	conns.Delete(connID)
	if conns.Size() == 0 {
		h.users.Delete(userID)
	}
}

// ConnectionCount returns the number of live connections of userID.
func (h *Hub) ConnectionCount(userID string) int {
	conns, ok := h.users.Load(userID)
	if !ok {
		return 0
	}
	return conns.Size()
}

func (h *Hub) deliver(env Envelope) {
	conns, ok := h.users.Load(env.UserID)
	if !ok {
		return
	}

	msg, err := json.Marshal(env.Event)
	if err != nil {
		logger.Error("failed to encode realtime event", "error", err)
		return
	}

	conns.Range(func(connID string, ch chan []byte) bool {
		select {
		case ch <- msg:
		default:
			logger.Warn("client send buffer full, event dropped", "user_id", env.UserID, "conn_id", connID)
		}
		return true
	})
}
