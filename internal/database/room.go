package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
	"gorm.io/gorm"
)

// CreateRoom creates the room and attaches its members in one
// transaction, so a failed member lookup leaves no partial group behind.
// A pair-key collision maps to chat.ErrRoomExists for the resolver to
// settle.
func (d *Database) CreateRoom(ctx context.Context, nr chat.NewRoom) (*models.Room, error) {
	var room models.Room

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Where("email IN ?", nr.Members).Find(&users).Error; err != nil {
			return err
		}
		if len(users) != len(nr.Members) {
			// Members were validated against the directory before this
			// call; a mismatch means a user row vanished underneath us.
			return fmt.Errorf("expected %d member rows, found %d", len(nr.Members), len(users))
		}

		room = models.Room{
			Kind:      nr.Kind,
			Name:      nr.Name,
			PairKey:   nr.PairKey,
			CreatedBy: nr.CreatedBy,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}

		return tx.Model(&room).Association("Members").Append(&users)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, chat.ErrRoomExists
		}
		return nil, &chat.StorageError{Op: "create room", Err: err}
	}

	room.Members = nil
	if err := d.db.WithContext(ctx).Model(&room).Association("Members").Find(&room.Members); err != nil {
		return nil, &chat.StorageError{Op: "load room members", Err: err}
	}

	return &room, nil
}

// RoomByID loads a room with its member set.
func (d *Database) RoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := d.db.WithContext(ctx).Preload("Members").First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrRoomNotFound
		}
		return nil, &chat.StorageError{Op: "load room", Err: err}
	}
	return &room, nil
}

// PrivateRoomByPair looks up the private room for a canonical pair key.
func (d *Database) PrivateRoomByPair(ctx context.Context, pairKey string) (*models.Room, error) {
	var room models.Room
	err := d.db.WithContext(ctx).Preload("Members").
		First(&room, "kind = ? AND pair_key = ?", chat.KindPrivate, pairKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrRoomNotFound
		}
		return nil, &chat.StorageError{Op: "find private room", Err: err}
	}
	return &room, nil
}

// RoomsForUser returns every room the identifier is a member of.
func (d *Database) RoomsForUser(ctx context.Context, identifier string) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.WithContext(ctx).
		Joins("JOIN room_members rm ON rm.room_id = rooms.id").
		Joins("JOIN users u ON u.id = rm.user_id").
		Where("u.email = ?", identifier).
		Preload("Members").
		Order("rooms.created_at").
		Find(&rooms).Error
	if err != nil {
		return nil, &chat.StorageError{Op: "list rooms", Err: err}
	}
	return rooms, nil
}
