// internal/service/service.go
package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Athycodz/CoMpliment-Walll/internal/email"
	"github.com/Athycodz/CoMpliment-Walll/internal/fcm"
	"github.com/Athycodz/CoMpliment-Walll/internal/moderation"
)

// Moderator is the external content gate consulted before persistence.
// Satisfied by *moderation.Client; stubbed in tests.
type Moderator interface {
	Moderate(ctx context.Context, message string) moderation.Result
}

// WallService owns all compliment-wall business logic: the submission
// workflow, the inbox, and the member directory.
type WallService struct {
	db        *gorm.DB
	moderator Moderator
	// mailer and push are optional; nil disables the corresponding
	// best-effort notification channel.
	mailer *email.Sender
	push   *fcm.Client
}

func NewWallService(db *gorm.DB, moderator Moderator, mailer *email.Sender, push *fcm.Client) *WallService {
	return &WallService{
		db:        db,
		moderator: moderator,
		mailer:    mailer,
		push:      push,
	}
}

func (s *WallService) GetDB() *gorm.DB {
	return s.db
}
