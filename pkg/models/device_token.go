package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceToken is a push-notification registration for one device.
type DeviceToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(128);not null;index"`
	Token     string    `json:"token" gorm:"type:varchar(500);not null;uniqueIndex"`
	Platform  string    `json:"platform" gorm:"type:varchar(20);not null;default:'web'"`
	CreatedAt time.Time `json:"created_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}

// DeviceTokenRequest registers or unregisters one push token.
type DeviceTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform,omitempty"`
}
