package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	"github.com/kyashasri/CHAT-APPLICATION/internal/database"
	"github.com/kyashasri/CHAT-APPLICATION/internal/middleware"
	ws "github.com/kyashasri/CHAT-APPLICATION/internal/websocket"
)

// WebSocketHandler upgrades authenticated requests and binds the
// resulting session to the caller's identity before any event flows.
type WebSocketHandler struct {
	hub          *ws.Hub
	eventHandler *MessageHandler
	db           *database.Database
	upgrader     websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, eventHandler *MessageHandler, db *database.Database) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		eventHandler: eventHandler,
		db:           db,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origin in prod
				return true
			},
		},
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.db.GetUser(userID.(uuid.UUID).String())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, chat.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.eventHandler)
}
