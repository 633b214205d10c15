package dto

import "time"

// CreateChatRequest opens (or finds) a private chat with another user.
type CreateChatRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateGroupRequest creates a group room; every member must resolve in
// the directory or nothing is created.
type CreateGroupRequest struct {
	Name    string   `json:"name" binding:"required,min=1,max=100"`
	Members []string `json:"members" binding:"required,min=1"`
}

// MessageResponse mirrors the delivered wire payload so history replay
// and realtime delivery render identically. Timestamp is the hour:minute
// display string; CreatedAt carries the full instant.
type MessageResponse struct {
	Seq        int64     `json:"seq"`
	Body       string    `json:"body"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"sender_name,omitempty"`
	Timestamp  string    `json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
}
