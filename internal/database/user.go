package database

import (
	"context"
	"errors"

	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists implements the directory contract consumed by the room resolver.
func (d *Database) Exists(ctx context.Context, identifier string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", identifier).
		Count(&count).Error
	if err != nil {
		return false, &chat.StorageError{Op: "directory lookup", Err: err}
	}
	return count > 0, nil
}

func (d *Database) DisplayName(ctx context.Context, identifier string) (string, error) {
	var user models.User
	err := d.db.WithContext(ctx).Select("name").
		Where("email = ?", identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", chat.ErrUnknownUser
		}
		return "", &chat.StorageError{Op: "directory lookup", Err: err}
	}
	return user.Name, nil
}
