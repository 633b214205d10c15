package handlers

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	ws "github.com/kyashasri/CHAT-APPLICATION/internal/websocket"
)

// MessageHandler validates inbound wire events and routes them into the
// core: join goes through the resolver's authorization gate before the
// hub subscribes the session, send goes through the fan-out dispatcher.
type MessageHandler struct {
	resolver   *chat.Resolver
	dispatcher *chat.Dispatcher
	hub        *ws.Hub
}

func NewMessageHandler(resolver *chat.Resolver, dispatcher *chat.Dispatcher, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{
		resolver:   resolver,
		dispatcher: dispatcher,
		hub:        hub,
	}
}

func (h *MessageHandler) HandleEvent(client *ws.Client, ev *chat.Event) error {
	switch ev.Type {
	case chat.EventJoin:
		return h.handleJoin(client, ev)

	case chat.EventSend:
		return h.handleSend(client, ev)

	default:
		log.Printf("unknown event type: %s", ev.Type)
		return ws.ErrInvalidEvent
	}
}

func (h *MessageHandler) handleJoin(client *ws.Client, ev *chat.Event) error {
	if ev.RoomID == nil {
		return ws.ErrInvalidEvent
	}

	ident, ok := client.Identity()
	if !ok {
		return chat.ErrUnauthenticated
	}

	if _, err := h.resolver.Authorize(context.Background(), ident.Email, *ev.RoomID); err != nil {
		return err
	}

	h.hub.JoinRoom(client, *ev.RoomID)
	return nil
}

func (h *MessageHandler) handleSend(client *ws.Client, ev *chat.Event) error {
	if ev.RoomID == nil {
		return ws.ErrInvalidEvent
	}

	var payload chat.SendPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}
	if strings.TrimSpace(payload.Body) == "" {
		return ws.ErrInvalidEvent
	}

	_, err := h.dispatcher.Send(context.Background(), client, *ev.RoomID, payload.Body)
	return err
}
