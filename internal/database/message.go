package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
	"gorm.io/gorm"
)

// Append writes a message with a server-assigned timestamp and a sequence
// number one greater than the room's current maximum. The transaction
// plus the unique (room_id, seq) index keep the sequence gap-free even if
// another writer sneaks in between the read and the insert.
func (d *Database) Append(ctx context.Context, roomID uuid.UUID, sender, senderName, body string) (*models.Message, error) {
	var msg models.Message

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		err := tx.Model(&models.Message{}).
			Where("room_id = ?", roomID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error
		if err != nil {
			return err
		}

		msg = models.Message{
			RoomID:     roomID,
			Seq:        maxSeq + 1,
			Sender:     sender,
			SenderName: senderName,
			Body:       body,
			CreatedAt:  time.Now(),
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return nil, &chat.StorageError{Op: "append message", Err: err}
	}

	return &msg, nil
}

// History returns the room's full message history in ascending sequence
// order. Messages are immutable, so repeated reads without new appends
// are identical.
func (d *Database) History(ctx context.Context, roomID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("seq ASC").
		Find(&messages).Error
	if err != nil {
		return nil, &chat.StorageError{Op: "read history", Err: err}
	}
	return messages, nil
}
