package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512 * 1024 // 512KB
)

// EventHandler receives every validated inbound event from a session's
// read loop.
type EventHandler interface {
	HandleEvent(client *Client, ev *chat.Event) error
}

// Client is one live connection: a session id, the identity bound at
// connect time, and the rooms the session has joined.
type Client struct {
	ID    uuid.UUID
	ident chat.Identity
	Conn  *websocket.Conn
	Send  chan []byte
	Rooms map[uuid.UUID]bool
	Hub   *Hub
	mu    sync.RWMutex
}

func NewClient(hub *Hub, conn *websocket.Conn, ident chat.Identity) *Client {
	return &Client{
		ID:    uuid.New(),
		ident: ident,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Rooms: make(map[uuid.UUID]bool),
		Hub:   hub,
	}
}

// Identity implements chat.Session. The second return is false when no
// identity was bound, in which case every operation is refused.
func (c *Client) Identity() (chat.Identity, bool) {
	return c.ident, c.ident.Email != ""
}

// ReadPump reads events from the connection until it drops, then
// unregisters the session. Disconnection is the only cancellation
// trigger, so unregistering here is what reliably unbinds the session.
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev chat.Event
		err := c.Conn.ReadJSON(&ev)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		if handler == nil {
			continue
		}
		if err := handler.HandleEvent(c, &ev); err != nil {
			log.Printf("event %s from session %s rejected: %v", ev.Type, c.ID, err)
			c.SendError(err.Error())
		}
	}
}

// WritePump forwards queued payloads to the connection in order. Queued
// order is delivery order; nothing is coalesced or dropped here.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent queues an event for this session only.
func (c *Client) SendEvent(ev *chat.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	select {
	case c.Send <- payload:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(reason string) {
	data, err := json.Marshal(chat.ErrorPayload{Error: reason})
	if err != nil {
		return
	}
	c.SendEvent(&chat.Event{
		Type:      chat.EventError,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (c *Client) IsInRoom(roomID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rooms[roomID]
}

func (c *Client) JoinedRooms() []uuid.UUID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]uuid.UUID, 0, len(c.Rooms))
	for roomID := range c.Rooms {
		rooms = append(rooms, roomID)
	}
	return rooms
}

var _ chat.Session = (*Client)(nil)
