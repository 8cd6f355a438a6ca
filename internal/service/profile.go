// internal/service/profile.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

// CreateProfile persists the profile row for a freshly issued provider UID.
// The username must be unique; the unique index is the backstop, the
// pre-check gives a clean error instead of a driver-specific one.
func (s *WallService) CreateProfile(ctx context.Context, uid, username, email string, age int) (*models.User, error) {
	username = strings.TrimSpace(username)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	user := models.User{
		ID:       uid,
		Username: username,
		Email:    email,
		Age:      age,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func(to, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.mailer.SendWelcome(ctx, to, name); err != nil {
				log.Printf("⚠️ [SIGNUP] Welcome email to %s failed: %v", name, err)
			}
		}(user.Email, user.Username)
	}

	return &user, nil
}

func (s *WallService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *WallService) SetAvatarURL(ctx context.Context, uid, url string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", uid).
		Update("avatar_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RegisterDeviceToken upserts a push registration. Re-registering the same
// token moves it to the current user (device handed to another account).
func (s *WallService) RegisterDeviceToken(ctx context.Context, uid, token, platform string) error {
	if platform == "" {
		platform = "web"
	}

	var existing models.DeviceToken
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&existing).Error
	switch {
	case err == nil:
		return s.db.WithContext(ctx).Model(&existing).
			Updates(map[string]interface{}{"user_id": uid, "platform": platform}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.WithContext(ctx).Create(&models.DeviceToken{
			ID:       uuid.New(),
			UserID:   uid,
			Token:    token,
			Platform: platform,
		}).Error
	default:
		return err
	}
}

func (s *WallService) UnregisterDeviceToken(ctx context.Context, uid, token string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", uid, token).
		Delete(&models.DeviceToken{}).Error
}
