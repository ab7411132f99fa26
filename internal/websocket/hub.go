// Package websocket pushes mock-mode status changes to connected clients,
// so a UI notices a toggle from the CLI or another tab without polling.
package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	wildcard "github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/clearstonehq/regmock/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Message is the wire envelope for every frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client is one connected subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub maintains active clients and fans status updates out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex

	getStatus func() any
	upgrader  websocket.Upgrader
}

// NewHub creates a hub. getStatus supplies the current mock-mode status for
// welcome frames and explicit status requests; allowedOrigins is a
// comma-separated list of extra origin patterns (wildcards permitted) beyond
// the same-host default.
func NewHub(getStatus func() any, allowedOrigins string) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		getStatus:  getStatus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// originChecker admits requests without an Origin header (non-browser
// clients), same-host origins, and origins matching a configured pattern.
func originChecker(allowedOrigins string) func(*http.Request) bool {
	patterns := strings.FieldsFunc(allowedOrigins, func(r rune) bool {
		return r == ',' || r == ' '
	})

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		parsed, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(parsed.Host, r.Host) {
			return true
		}
		for _, pattern := range patterns {
			if wildcard.Match(pattern, origin) || wildcard.Match(pattern, parsed.Host) {
				return true
			}
		}
		log.Warn().Str("origin", origin).Msg("rejected WebSocket origin")
		return false
	}
}

// Run is the hub's main loop. Blocks until Stop is called.
func (h *Hub) Run() {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.WebSocketClients.Set(float64(count))
			log.Info().Str("client", client.id).Int("clients", count).Msg("WebSocket client connected")

			welcome := Message{
				Type: "welcome",
				Data: map[string]any{
					"message": "Connected to regmock status stream",
					"status":  h.currentStatus(),
				},
			}
			if data, err := json.Marshal(welcome); err == nil {
				select {
				case client.send <- data:
				default:
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			metrics.WebSocketClients.Set(float64(count))
			log.Info().Str("client", client.id).Int("clients", count).Msg("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- message:
				default:
					// Slow client; drop it rather than block the hub.
					h.mu.Lock()
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
					}
					h.mu.Unlock()
				}
			}

		case <-pingTicker.C:
			h.broadcastMessage(Message{
				Type: "ping",
				Data: map[string]int64{"timestamp": time.Now().Unix()},
			})

		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			metrics.WebSocketClients.Set(0)
			return
		}
	}
}

// Stop terminates the run loop and disconnects all clients.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// HandleWebSocket upgrades the request and starts the client pumps.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
		id:   fmt.Sprintf("client-%s", ulid.Make()),
	}

	select {
	case h.register <- client:
	case <-h.stop:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// BroadcastMockMode pushes a status change to every client.
func (h *Hub) BroadcastMockMode(status any) {
	h.broadcastMessage(Message{Type: "mockMode", Data: status})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) currentStatus() any {
	if h.getStatus == nil {
		return nil
	}
	return h.getStatus()
}

func (h *Hub) broadcastMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("type", msg.Type).Msg("failed to marshal WebSocket message")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Warn().Msg("WebSocket broadcast channel full")
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stop:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("client", c.id).Msg("WebSocket read error")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Debug().Err(err).Str("client", c.id).Msg("ignoring malformed WebSocket message")
			continue
		}

		switch msg.Type {
		case "ping":
			pong := Message{
				Type: "pong",
				Data: map[string]int64{"timestamp": time.Now().Unix()},
			}
			if data, err := json.Marshal(pong); err == nil {
				select {
				case c.send <- data:
				default:
				}
			}
		case "status":
			reply := Message{Type: "mockMode", Data: c.hub.currentStatus()}
			if data, err := json.Marshal(reply); err == nil {
				select {
				case c.send <- data:
				default:
				}
			}
		default:
			log.Debug().Str("client", c.id).Str("type", msg.Type).Msg("unhandled WebSocket message")
		}
	}
}

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
