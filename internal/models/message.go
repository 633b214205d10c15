package models

import (
	"github.com/google/uuid"
	"time"
)

// Message is immutable once appended. Seq is assigned by the message log,
// one greater than the room's current maximum, so (RoomID, Seq) totally
// orders a room's history. SenderName is denormalized at append time so
// history survives display-name lookups going away.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID     uuid.UUID `gorm:"not null;uniqueIndex:idx_room_seq"`
	Seq        int64     `gorm:"not null;uniqueIndex:idx_room_seq"`
	Sender     string    `gorm:"not null"`
	SenderName string
	Body       string `gorm:"not null"`
	CreatedAt  time.Time

	Room Room `gorm:"foreignKey:RoomID"`
}
