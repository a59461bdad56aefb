package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/gorilla/websocket"
)

// Frame is the wire envelope delivered to every subscriber.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// StateSource supplies the last-known location replayed to new connections.
// A nil payload means no location has been seen yet and nothing is replayed.
type StateSource interface {
	ReplayPayload() (topic string, payload any, ok bool)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origins; CORS is enforced at the
	// router, so the upgrade itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub broadcasts frames to all connected websocket clients. Delivery is
// best-effort: there is no buffering beyond a small per-client channel and a
// client that cannot keep up is disconnected.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	state   StateSource
	logr    *zap.Logger
}

type client struct {
	conn   *websocket.Conn
	egress chan Frame
}

func NewHub(state StateSource, logr *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		state:   state,
		logr:    logr,
	}
}

// Publish delivers payload to every connected client under topic.
func (h *Hub) Publish(topic string, payload any) {
	frame := Frame{Event: topic, Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.egress <- frame:
		default:
			// Slow consumer; drop the frame rather than block the publisher.
			h.logr.Warn("dropping frame for slow client", zap.String("topic", topic))
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWS upgrades the request and registers the connection. If a last-known
// location exists it is sent to this client alone before any broadcasts.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logr.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn:   conn,
		egress: make(chan Frame, 16),
	}

	// Initial-state sync happens before the client joins the broadcast set,
	// so it receives the replay exactly once.
	if topic, payload, ok := h.state.ReplayPayload(); ok {
		c.egress <- Frame{Event: topic, Data: payload}
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logr.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	for frame := range c.egress {
		payload, err := json.Marshal(frame)
		if err != nil {
			h.logr.Error("marshal frame", zap.Error(err))
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(c)
			return
		}
	}
}

// readLoop drains inbound messages so pings and close frames are processed.
// Clients are subscribers only; anything they send is discarded.
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(1024)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logr.Debug("client read error", zap.Error(err))
			}
			h.remove(c)
			return
		}
	}
}

// remove deregisters the client. No per-client state is retained, so
// disconnect is only a map delete and a socket close.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.egress)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}
