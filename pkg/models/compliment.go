package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ModerationStatus string

const (
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// Compliment is one persisted anonymous message. The sender is intentionally
// never recorded anywhere on this row.
type Compliment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ToUserID   string    `json:"to_user_id" gorm:"type:varchar(128);not null;index"`
	ToUsername string    `json:"to_username" gorm:"type:varchar(100);not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false"`
	// Moderation outcome, attached at creation and never mutated.
	ModerationStatus ModerationStatus `json:"moderation_status" gorm:"type:varchar(20);not null"`
	AIModerated      bool             `json:"ai_moderated" gorm:"not null;default:false"`
	AIReason         string           `json:"ai_reason" gorm:"type:text"`
	AIConfidence     *float64         `json:"ai_confidence,omitempty"`
	ModerationRaw    datatypes.JSON   `json:"moderation_raw,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
}

func (Compliment) TableName() string {
	return "compliments"
}

// SendComplimentRequest is the submission payload (API input).
type SendComplimentRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// InboxEntry is the recipient-facing projection of a Compliment: no
// moderation internals, plus a human-relative timestamp label.
type InboxEntry struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}
