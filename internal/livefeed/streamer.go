// Package livefeed broadcasts scene telemetry to connected websocket
// clients, following the connection-registry/broadcast pattern of
// Valkyrie/internal/livefeed/streamer.go and
// Pricilla/internal/livefeed/streamer.go.
package livefeed

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/asgard/orrery/internal/scene"
	"github.com/asgard/orrery/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is one telemetry update broadcast to connected clients.
type Frame struct {
	Time   float64   `json:"time"`
	Bodies []bodyJSON `json:"bodies"`
}

type bodyJSON struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
}

// Streamer maintains the set of connected websocket clients and
// broadcasts Frame updates to all of them.
type Streamer struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan Frame
	metrics *telemetry.Metrics
}

// NewStreamer creates an empty connection registry.
func NewStreamer(metrics *telemetry.Metrics) *Streamer {
	return &Streamer{
		clients: make(map[*websocket.Conn]chan Frame),
		metrics: metrics,
	}
}

// ServeHTTP upgrades the connection to a websocket and registers it for
// broadcast until the client disconnects.
func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	ch := make(chan Frame, 8)
	s.register(conn, ch)
	defer s.unregister(conn)

	for frame := range ch {
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

func (s *Streamer) register(conn *websocket.Conn, ch chan Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[conn] = ch
	if s.metrics != nil {
		s.metrics.LivefeedConnections.Inc()
	}
}

func (s *Streamer) unregister(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.clients[conn]; ok {
		close(ch)
		delete(s.clients, conn)
		conn.Close()
		if s.metrics != nil {
			s.metrics.LivefeedConnections.Dec()
		}
	}
}

// Broadcast pushes a frame built from sc's current state to every
// connected client, dropping the frame for any client whose send buffer
// is full rather than blocking the tick loop.
func (s *Streamer) Broadcast(sc *scene.Scene) {
	bodies := sc.Bodies()
	frame := Frame{Time: sc.Time(), Bodies: make([]bodyJSON, len(bodies))}
	for i, b := range bodies {
		frame.Bodies[i] = bodyJSON{
			Name:     b.Name,
			Position: [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.clients {
		select {
		case ch <- frame:
		default:
		}
	}
}

// ConnectionCount returns the number of currently registered clients.
func (s *Streamer) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// marshalFrame is exposed for tests that want to check wire format
// without standing up a real websocket connection.
func marshalFrame(f Frame) ([]byte, error) {
	return json.Marshal(f)
}
