package models

import (
	"github.com/google/uuid"
	"time"
)

// Room is a private (two-party) or group chat. Private rooms carry a
// PairKey derived from the sorted member pair; the unique index on it is
// what makes concurrent find-or-create yield a single room per pair.
// Group rooms leave PairKey NULL. Members are never removed.
type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      string    `gorm:"not null;check:kind IN ('private','group')"`
	Name      string
	PairKey   *string `gorm:"uniqueIndex"`
	CreatedBy string
	CreatedAt time.Time

	Members  []User    `gorm:"many2many:room_members"`
	Messages []Message `gorm:"foreignKey:RoomID"`
}
