package ws

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients organized by room and
// delivers events to them
type Hub struct {
	// Registered clients and the rooms they joined
	clients map[*Client]map[string]bool

	// Room membership, keyed by room name
	rooms map[string]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients and rooms maps
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]map[string]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and disconnects
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		h.clients[client] = make(map[string]bool)
	}

	h.logger.Info().
		Str("clientID", client.ID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub and removes it
// from every room it joined
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	rooms, ok := h.clients[client]
	if !ok {
		h.mu.Unlock()
		return
	}

	for room := range rooms {
		h.removeFromRoom(client, room)
	}
	delete(h.clients, client)
	close(client.send)
	h.mu.Unlock()

	if client.onClose != nil {
		client.onClose(client)
	}

	h.logger.Info().
		Str("clientID", client.ID).
		Msg("Client unregistered")
}

// Join adds a client to a room. A client may be in several rooms at once
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms, ok := h.clients[client]
	if !ok {
		// Join can race the register channel right after the upgrade
		rooms = make(map[string]bool)
		h.clients[client] = rooms
	}
	rooms[room] = true

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

// Leave removes a client from a room
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rooms, ok := h.clients[client]; ok {
		delete(rooms, room)
	}
	h.removeFromRoom(client, room)
}

// removeFromRoom removes a client from the room membership map.
// Caller must hold the write lock.
func (h *Hub) removeFromRoom(client *Client, room string) {
	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(clients, client)

	// If no more clients in this room, clean up
	if len(clients) == 0 {
		delete(h.rooms, room)
	}
}

// BroadcastToRoom sends an event to every client in a room. When except
// is non-nil that client is skipped, matching a sender broadcasting to
// its peers.
func (h *Hub) BroadcastToRoom(room, event string, data interface{}, except *Client) {
	payload, err := encodeEnvelope(event, data)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("room", room).
			Str("event", event).
			Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.RLock()
	clients, ok := h.rooms[room]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Str("room", room).
			Str("event", event).
			Msg("No clients in room for broadcast")
		return
	}

	var slow []*Client
	for client := range clients {
		if client == except {
			continue
		}
		select {
		case client.send <- payload:
			// Event sent successfully
		default:
			// Client's send buffer is full, they might be slow or disconnected
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregister <- client
	}

	h.logger.Debug().
		Str("room", room).
		Str("event", event).
		Int("clientCount", len(clients)).
		Msg("Event broadcasted to room")
}

// RoomSize returns the number of connected clients in a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}

// Rooms returns the rooms a client has joined
func (h *Hub) Rooms(client *Client) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rooms := make([]string, 0, len(h.clients[client]))
	for room := range h.clients[client] {
		rooms = append(rooms, room)
	}
	return rooms
}
