package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512 * 1024 // 512KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development, in production you should restrict this
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// envelope is the wire format for events in both directions
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func encodeEnvelope(event string, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(envelope{Event: event, Data: raw})
}

// EventHandler is invoked for every event a client sends
type EventHandler func(c *Client, event string, data json.RawMessage)

// Client is a middleman between the websocket connection and the hub
type Client struct {
	// Unique connection identifier
	ID string

	hub *Hub

	// The WebSocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte

	// Dispatches inbound events
	handler EventHandler

	// Called once after the client is removed from the hub
	onClose func(c *Client)

	// Connection-scoped values set by event handlers
	valuesMu sync.RWMutex
	values   map[string]string

	// Logger instance
	logger zerolog.Logger
}

// Set stores a connection-scoped value
func (c *Client) Set(key, value string) {
	c.valuesMu.Lock()
	defer c.valuesMu.Unlock()
	c.values[key] = value
}

// Get returns a connection-scoped value
func (c *Client) Get(key string) string {
	c.valuesMu.RLock()
	defer c.valuesMu.RUnlock()
	return c.values[key]
}

// Emit sends an event to this client only
func (c *Client) Emit(event string, data interface{}) {
	payload, err := encodeEnvelope(event, data)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("clientID", c.ID).
			Str("event", event).
			Msg("Failed to marshal event")
		return
	}

	select {
	case c.send <- payload:
		// Event queued successfully
	default:
		c.logger.Warn().
			Str("clientID", c.ID).
			Str("event", event).
			Msg("Dropped event for slow client")
	}
}

// readPump pumps events from the websocket connection to the handler
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			// Don't log normal close conditions as warnings
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().
					Str("clientID", c.ID).
					Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().
					Err(err).
					Str("clientID", c.ID).
					Msg("Unexpected WebSocket close")
			} else {
				// Log other errors at debug level to avoid filling logs with normal disconnections
				c.logger.Debug().
					Err(err).
					Str("clientID", c.ID).
					Msg("WebSocket read error")
			}
			break
		}

		var env envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.logger.Error().
				Err(err).
				Str("clientID", c.ID).
				Str("message", string(message)).
				Msg("Failed to unmarshal client event")
			continue
		}
		if env.Event == "" {
			continue
		}

		c.handler(c, env.Event, env.Data)
	}
}

// writePump pumps messages from the hub to the websocket connection
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
				// The hub closed the channel
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

// Serve upgrades an HTTP request to a WebSocket connection, registers
// the client with the hub and starts its pumps
func Serve(hub *Hub, ctx *gin.Context, handler EventHandler, onClose func(*Client), logger zerolog.Logger) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		ID:      uuid.NewString(),
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		handler: handler,
		onClose: onClose,
		values:  make(map[string]string),
		logger:  logger,
	}
	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	logger.Info().
		Str("clientID", client.ID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
