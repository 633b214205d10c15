package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
)

// Hub is the presence registry: it maps live sessions to their bound
// identity and to the set of rooms they have joined, and fans payloads
// out to a room's subscribers. It implements chat.Registry.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Sessions per user; one user may hold several connections.
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Subscribed sessions per room.
	rooms map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		rooms:       make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
	h.rooms = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

// Register binds a freshly connected session into the registry.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister drops a session and all its subscriptions; invoked on
// disconnect.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.ident.ID]; !ok {
		h.userClients[client.ident.ID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.ident.ID][client.ID] = client

	log.Printf("session registered: %s (user: %s)", client.ID, client.ident.Email)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for roomID := range client.Rooms {
		h.removeFromRoomLocked(client, roomID)
	}

	if userClients, ok := h.userClients[client.ident.ID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.ident.ID)
		}
	}

	delete(h.clients, client.ID)
	// Closing under the write lock: Deliver holds the read lock while it
	// sends, so it can never hit a closed channel.
	close(client.Send)

	log.Printf("session unregistered: %s (user: %s)", client.ID, client.ident.Email)
}

// JoinRoom subscribes the session to a room's deliveries. Idempotent.
// Authorization happens before this call; the hub only tracks presence.
func (h *Hub) JoinRoom(client *Client, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[uuid.UUID]*Client)
	}
	if _, ok := h.rooms[roomID][client.ID]; ok {
		return
	}

	h.rooms[roomID][client.ID] = client
	client.mu.Lock()
	client.Rooms[roomID] = true
	client.mu.Unlock()
}

func (h *Hub) removeFromRoomLocked(client *Client, roomID uuid.UUID) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(room, client.ID)
	client.mu.Lock()
	delete(client.Rooms, roomID)
	client.mu.Unlock()

	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
}

// Deliver sends the payload to every session subscribed to the room.
// Best-effort per subscriber: a full queue is logged and skipped, never
// surfaced to the sender.
func (h *Hub) Deliver(roomID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		select {
		case client.Send <- payload:
		default:
			log.Printf("dropping delivery to session %s: queue full", client.ID)
		}
	}
}

// RoomUsers returns the distinct users with a session subscribed to the
// room.
func (h *Hub) RoomUsers(roomID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	for _, client := range h.rooms[roomID] {
		seen[client.ident.ID] = true
	}

	users := make([]uuid.UUID, 0, len(seen))
	for userID := range seen {
		users = append(users, userID)
	}
	return users
}

// OnlineUsers returns every user with at least one live session.
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

var _ chat.Registry = (*Hub)(nil)
