package database

import "gorm.io/gorm"

// Database is the persistence layer: room store, message log and user
// directory over one gorm handle. It implements chat.RoomStore,
// chat.MessageLog and chat.Directory.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
