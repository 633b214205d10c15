package models

import (
	"github.com/google/uuid"
	"time"
)

// User is owned by the identity layer. The chat core only reads
// Email (the public identifier) and Name (the display name).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time

	Rooms []Room `gorm:"many2many:room_members"`
}
