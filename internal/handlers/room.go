package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	"github.com/kyashasri/CHAT-APPLICATION/internal/database"
	"github.com/kyashasri/CHAT-APPLICATION/internal/handlers/dto"
	"github.com/kyashasri/CHAT-APPLICATION/internal/middleware"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
	"github.com/kyashasri/CHAT-APPLICATION/internal/websocket"
)

type RoomHandler struct {
	db       *database.Database
	resolver *chat.Resolver
	hub      *websocket.Hub
}

func NewRoomHandler(db *database.Database, resolver *chat.Resolver, hub *websocket.Hub) *RoomHandler {
	return &RoomHandler{db: db, resolver: resolver, hub: hub}
}

// CreateChat resolves (or creates) the private room between the caller
// and the searched user.
func (h *RoomHandler) CreateChat(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.resolver.ResolvePrivate(c.Request.Context(), user.Email, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrSelfChat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot chat with yourself"})
		case errors.Is(err, chat.ErrUnknownUser):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat"})
		}
		return
	}

	c.JSON(http.StatusOK, h.formatRoomResponse(user.Email, room))
}

// CreateGroup validates every member against the directory and creates
// the group all-or-nothing.
func (h *RoomHandler) CreateGroup(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.resolver.ResolveGroupCreate(c.Request.Context(), user.Email, req.Name, req.Members)
	if err != nil {
		var invalid *chat.InvalidMembersError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "some members are not registered",
				"invalid_members": invalid.Identifiers,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, h.formatRoomResponse(user.Email, room))
}

// GetMyRooms lists every room the caller is a member of, with private
// chats labeled by the peer's display name.
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	rooms, err := h.db.RoomsForUser(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rooms"})
		return
	}

	response := make([]gin.H, len(rooms))
	for i := range rooms {
		response[i] = h.formatRoomResponse(user.Email, &rooms[i])
	}

	c.JSON(http.StatusOK, gin.H{"rooms": response})
}

// GetRoom returns one room, gated on membership.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.resolver.Authorize(c.Request.Context(), user.Email, roomID)
	if err != nil {
		respondAuthorizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.formatRoomResponse(user.Email, room))
}

func (h *RoomHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return user, true
}

// respondAuthorizeError maps authorization failures without leaking more
// than a generic denial.
func respondAuthorizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, chat.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *RoomHandler) formatRoomResponse(viewer string, room *models.Room) gin.H {
	members := make([]gin.H, len(room.Members))
	for i, member := range room.Members {
		members[i] = gin.H{
			"email": member.Email,
			"name":  member.Name,
		}
	}

	// Private rooms have no name of their own; show the peer's.
	name := room.Name
	if room.Kind == chat.KindPrivate {
		for _, member := range room.Members {
			if member.Email != viewer {
				name = member.Name
				break
			}
		}
	}

	return gin.H{
		"id":           room.ID,
		"kind":         room.Kind,
		"name":         name,
		"created_by":   room.CreatedBy,
		"created_at":   room.CreatedAt,
		"members":      members,
		"online_count": len(h.hub.RoomUsers(room.ID)),
	}
}
