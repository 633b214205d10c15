package chat

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
)

type EventType string

const (
	// Inbound, identity implicit from the bound session.
	EventJoin EventType = "join"
	EventSend EventType = "send"

	// Outbound.
	EventDelivered EventType = "delivered"
	EventError     EventType = "error"
)

// Event is the closed set of room-scoped wire messages. Data holds the
// per-type payload; required fields are validated before reaching the core.
type Event struct {
	Type      EventType       `json:"type"`
	RoomID    *uuid.UUID      `json:"room_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type SendPayload struct {
	Body string `json:"body"`
}

// DeliveredMessage is the fan-out payload. Timestamp is an hour:minute
// display string in server-local time; ordering relies on Seq, never on it.
type DeliveredMessage struct {
	Seq        int64  `json:"seq"`
	Body       string `json:"body"`
	Sender     string `json:"sender"`
	SenderName string `json:"sender_name,omitempty"`
	Timestamp  string `json:"timestamp"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewDeliveredEvent wraps a persisted message as an outbound event.
func NewDeliveredEvent(msg *models.Message) (*Event, error) {
	payload := DeliveredMessage{
		Seq:        msg.Seq,
		Body:       msg.Body,
		Sender:     msg.Sender,
		SenderName: msg.SenderName,
		Timestamp:  msg.CreatedAt.Local().Format("15:04"),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	roomID := msg.RoomID
	return &Event{
		Type:      EventDelivered,
		RoomID:    &roomID,
		Data:      data,
		Timestamp: msg.CreatedAt,
	}, nil
}
