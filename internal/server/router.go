package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/kyashasri/CHAT-APPLICATION/internal/handlers"
	"github.com/kyashasri/CHAT-APPLICATION/internal/middleware"
	jwtauth "github.com/kyashasri/CHAT-APPLICATION/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *jwtauth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	roomH *handlers.RoomHandler,
	msgH *handlers.HTTPMessageHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/me", userH.GetMe)
		api.POST("/chats", roomH.CreateChat)
		api.POST("/groups", roomH.CreateGroup)
		api.GET("/rooms", roomH.GetMyRooms)
		api.GET("/rooms/:id", roomH.GetRoom)
		api.GET("/rooms/:id/messages", msgH.GetRoomMessages)
	}

	// Realtime endpoint
	ws := r.Group("/ws")
	ws.Use(middleware.WSAuthMiddleware(jwtMgr, rdb))
	{
		ws.GET("", wsH.HandleWebSocket)
	}
}
