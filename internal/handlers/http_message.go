package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	"github.com/kyashasri/CHAT-APPLICATION/internal/database"
	"github.com/kyashasri/CHAT-APPLICATION/internal/handlers/dto"
	"github.com/kyashasri/CHAT-APPLICATION/internal/middleware"
)

// HTTPMessageHandler serves message history so a client entering a room
// can replay everything said before it connected.
type HTTPMessageHandler struct {
	db       *database.Database
	resolver *chat.Resolver
}

func NewHTTPMessageHandler(db *database.Database, resolver *chat.Resolver) *HTTPMessageHandler {
	return &HTTPMessageHandler{db: db, resolver: resolver}
}

// GetRoomMessages returns the room's full history in ascending sequence
// order, gated on membership.
func (h *HTTPMessageHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if _, err := h.resolver.Authorize(c.Request.Context(), user.Email, roomID); err != nil {
		respondAuthorizeError(c, err)
		return
	}

	messages, err := h.db.History(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		result[i] = dto.MessageResponse{
			Seq:        msg.Seq,
			Body:       msg.Body,
			Sender:     msg.Sender,
			SenderName: msg.SenderName,
			Timestamp:  msg.CreatedAt.Local().Format("15:04"),
			CreatedAt:  msg.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}
