package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quantarc/option-engine/pkg/metrics"
	"github.com/quantarc/option-engine/pkg/models"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Frame is the message envelope sent to stream clients.
type Frame struct {
	Type string            `json:"type"` // "point" or "result"
	Data *models.PathPoint `json:"data,omitempty"`
}

// Hub maintains the set of connected clients and broadcasts simulation
// frames to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	recorder   *metrics.Recorder
	log        *logger.Logger
}

// Client is a middleman between a websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a new stream hub.
func NewHub(recorder *metrics.Recorder) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		recorder:   recorder,
		log:        logger.GetLogger("stream.hub"),
	}
}

// Run starts the hub loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info("Starting simulation stream hub")

	for {
		select {
		case <-ctx.Done():
			h.log.Info("Stream hub shutting down")
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.recorder.RecordStreamClientConnect()
			h.log.Infof("Stream client registered, %d connected", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.recorder.RecordStreamClientDisconnect()
				h.log.Infof("Stream client unregistered, %d connected", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop it rather than stall the hub.
					delete(h.clients, client)
					close(client.send)
					h.recorder.RecordStreamClientDisconnect()
				}
			}
		}
	}
}

// BroadcastPoint sends one simulation time slice to all connected clients.
func (h *Hub) BroadcastPoint(point models.PathPoint) {
	frame := Frame{Type: "point", Data: &point}
	payload, err := json.Marshal(frame)
	if err != nil {
		h.log.Errorf("Failed to marshal stream frame: %v", err)
		return
	}

	select {
	case h.broadcast <- payload:
		h.recorder.RecordStreamFrame()
	default:
		h.log.Warn("Stream broadcast buffer full, dropping frame")
	}
}

// BroadcastResult streams a whole simulation result point by point.
func (h *Hub) BroadcastResult(result *models.PathResult) {
	for i := 0; i < result.Len(); i++ {
		h.BroadcastPoint(result.PointAt(i))
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and registers
// the client with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("Websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so control frames are processed; stream
// clients are not expected to send application messages.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warnf("Unexpected websocket close: %v", err)
			}
			return
		}
	}
}

// writePump forwards frames from the hub to the connection and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
