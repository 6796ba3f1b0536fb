// Package feed broadcasts ledger entries to WebSocket observers while a
// simulation runs. Entries originate in-process, so the hub is a plain
// fan-out: no subscriptions, no replay.
package feed

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"stocksimv1/internal/ledger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub manages connected WebSocket observers.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
	seq     int64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// ServeWS upgrades an HTTP request and registers the peer.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[feed] upgrade failed: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 64)}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	log.Printf("[feed] ws client connected (%d total)", h.NumClients())

	go c.writePump()
	go c.readPump()
}

// NumClients returns the number of connected observers.
func (h *Hub) NumClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends data on a channel to every connected client. Slow clients
// drop messages rather than stalling the simulation.
func (h *Hub) Broadcast(channel string, data []byte) {
	h.mu.Lock()
	h.seq++
	seq := h.seq
	h.mu.Unlock()

	buf := make([]byte, 0, len(channel)+len(data)+96)
	buf = append(buf, `{"channel":"`...)
	buf = append(buf, channel...)
	buf = append(buf, `","data":`...)
	buf = append(buf, data...)
	buf = append(buf, `,"ts":"`...)
	buf = time.Now().UTC().AppendFormat(buf, time.RFC3339Nano)
	buf = append(buf, `","seq":`...)
	buf = strconv.AppendInt(buf, seq, 10)
	buf = append(buf, '}')

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- buf:
		default:
			// client too slow, drop
		}
	}
}

// EntrySink adapts the hub to the ledger.Sink interface so a run can tee
// entries to live observers.
type EntrySink struct {
	hub      *Hub
	strategy string
}

// NewEntrySink creates a sink publishing on the "ledger.<strategy>" channel.
func NewEntrySink(hub *Hub, strategy string) *EntrySink {
	return &EntrySink{hub: hub, strategy: strategy}
}

// Append broadcasts the entry. Broadcasting never fails the run.
func (s *EntrySink) Append(e ledger.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	s.hub.Broadcast("ledger."+s.strategy, data)
	return nil
}

// Close is a no-op; clients disconnect on their own.
func (s *EntrySink) Close() error { return nil }
