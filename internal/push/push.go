// FilePath: internal/push/push.go
package push

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/shredderfleet/fleetcommand/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const (
	EventNavChanged     = "nav_changed"
	EventMachineReading = "machine_reading"

	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Event is the payload broadcast to all connected WebSocket clients.
type Event struct {
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

// MachineReading is the payload of a machine_reading event.
type MachineReading struct {
	MachineID string               `json:"machineId"`
	Status    models.MachineStatus `json:"status"`
	Reading   models.Reading       `json:"reading"`
}

// client wraps a WebSocket connection with a mutex for thread-safe writes.
type client struct {
	conn *ws.Conn
	mu   sync.Mutex
	done chan struct{}
}

// Hub maintains connected WebSocket clients and broadcasts events.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader ws.Upgrader
}

// NewHub creates a new Hub accepting the given origins ("*" for any).
func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{clients: make(map[*client]struct{})}
	h.upgrader = ws.Upgrader{CheckOrigin: originChecker(allowedOrigins)}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}

func (h *Hub) register(c *client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	return len(h.clients)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		close(c.done)
		_ = c.conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to all connected clients. Clients that cannot be
// written to are dropped.
func (h *Hub) Broadcast(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		nuts.L.Errorf("[Push] Marshal error: %v", err)
		return
	}
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			nuts.L.Warnf("[Push] Dropping client: %v", err)
			h.unregister(c)
		}
	}
}

func (c *client) write(data []byte) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("write panic: %v", r)
		}
	}()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(ws.TextMessage, data)
}

// BroadcastNav announces a navigation state change.
func (h *Hub) BroadcastNav(session string, state models.NavState) {
	h.Broadcast(Event{
		Type:    EventNavChanged,
		Payload: models.ActiveView{Session: session, State: state},
	})
}

// BroadcastReading announces a freshly ingested reading with its status.
func (h *Hub) BroadcastReading(machineID string, status models.MachineStatus, r models.Reading) {
	h.Broadcast(Event{
		Type:    EventMachineReading,
		Payload: MachineReading{MachineID: machineID, Status: status, Reading: r},
	})
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteControl(ws.CloseMessage,
			ws.FormatCloseMessage(ws.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
		c.mu.Unlock()
		h.unregister(c)
	}
}

// ServeHTTP upgrades the connection and keeps it alive with pings until the
// client goes away. Incoming messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		nuts.L.Warnf("[Push] Upgrade error: %v", err)
		return
	}

	c := &client{conn: conn, done: make(chan struct{})}
	nuts.L.Infof("[Push] Client connected (%d total)", h.register(c))

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-c.done:
				return
			case <-ticker.C:
				c.mu.Lock()
				err := conn.WriteControl(ws.PingMessage, nil, time.Now().Add(writeWait))
				c.mu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
	nuts.L.Infof("[Push] Client disconnected")
}
