package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/internal/journal"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 120 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Permissive origin check: the feed binds to localhost by default
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is a frame sent by a client
type Message struct {
	Type    string          `json:"type"` // "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is a frame sent to a client
type Response struct {
	Type    string      `json:"type"` // "fault", "pong", "error"
	Payload interface{} `json:"payload"`
}

// ErrorPayload describes a rejected client frame
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler streams hub records to WebSocket clients
type Handler struct {
	hub    *Hub
	logger *log.Logger
}

// NewHandler creates a WebSocket handler for hub
func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.GetDefault()
	}
	return &Handler{
		hub:    hub,
		logger: logger.WithName("feed"),
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorWithErr("WebSocket upgrade failed", err)
		return
	}
	h.handleConnection(conn)
}

// conn serializes writes; gorilla connections allow one concurrent writer
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(resp Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(resp)
}

func (c *conn) control(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(messageType, data, time.Now().Add(writeWait))
}

// handleConnection handles a single WebSocket connection
func (h *Handler) handleConnection(ws *websocket.Conn) {
	defer ws.Close()

	remote := ws.RemoteAddr().String()
	h.logger.Info("WebSocket connection established", log.String("remote", remote))

	records, cancel := h.hub.Subscribe()
	defer cancel()

	c := &conn{ws: ws}
	done := make(chan struct{})
	defer close(done)

	go h.writeLoop(c, records, done)

	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WarnWithErr("WebSocket read error", err, log.String("remote", remote))
			} else {
				h.logger.Info("WebSocket connection closed", log.String("remote", remote))
			}
			return
		}

		switch msg.Type {
		case "ping":
			c.send(Response{Type: "pong"})
		default:
			c.send(Response{Type: "error", Payload: ErrorPayload{
				Code:    "unknown_type",
				Message: "Unknown message type: " + msg.Type,
			}})
		}
	}
}

// writeLoop forwards records and keeps the connection alive
func (h *Handler) writeLoop(c *conn, records <-chan *journal.Record, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case rec, ok := <-records:
			if !ok {
				// hub closed
				c.control(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"))
				c.ws.Close()
				return
			}
			if err := c.send(Response{Type: "fault", Payload: rec}); err != nil {
				c.ws.Close()
				return
			}
		case <-ticker.C:
			if err := c.control(websocket.PingMessage, nil); err != nil {
				c.ws.Close()
				return
			}
		case <-done:
			return
		}
	}
}
