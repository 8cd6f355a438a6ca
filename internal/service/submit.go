// internal/service/submit.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Athycodz/CoMpliment-Walll/internal/moderation"
	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

const (
	minMessageLength = 10
	maxMessageLength = 500
)

// Send runs the submission workflow, strictly sequential and short-circuiting
// on the first failure. Persistence and the counter increment come last, so a
// rejected submission never leaves partial state behind. If the increment
// fails after the record was created, the counter stays stale until the next
// accepted compliment.
func (s *WallService) Send(ctx context.Context, senderID string, req *models.SendComplimentRequest) (*models.Compliment, error) {
	// 1. Recipient resolution: exact username match.
	username := strings.TrimSpace(strings.TrimPrefix(req.To, "@"))
	var recipient models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&recipient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	// 2. Self-send check.
	if recipient.ID == senderID {
		return nil, ErrSelfSend
	}

	// 3. Length validation.
	message := strings.TrimSpace(req.Message)
	if n := utf8.RuneCountInString(message); n < minMessageLength || n > maxMessageLength {
		return nil, ErrInvalidLength
	}

	// 4. Quick filter, local and before any network call.
	if verdict := moderation.QuickFilter(message); !verdict.Valid {
		return nil, &QuickFilterError{Reason: verdict.Reason, Message: verdict.Message}
	}

	// 5. External moderation. Never errors: unavailability fails open.
	result := s.moderator.Moderate(ctx, message)
	if result.Status == models.ModerationRejected {
		return nil, &ModerationError{Reason: result.Reason}
	}

	// 6. Persist with the moderation metadata attached.
	compliment := models.Compliment{
		ID:               uuid.New(),
		ToUserID:         recipient.ID,
		ToUsername:       recipient.Username,
		Message:          message,
		IsRead:           false,
		ModerationStatus: result.Status,
		AIModerated:      result.AIModerated,
		AIReason:         result.Reason,
		AIConfidence:     result.Confidence,
	}
	if result.Raw != "" {
		compliment.ModerationRaw = datatypes.JSON(result.Raw)
	}
	if err := s.db.WithContext(ctx).Create(&compliment).Error; err != nil {
		return nil, err
	}

	// 7. Atomic server-side increment: increment-by-delta, never
	// read-modify-write, so concurrent senders can't lose updates.
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", recipient.ID).
		UpdateColumn("compliments_received", gorm.Expr("compliments_received + ?", 1)).Error
	if err != nil {
		log.Printf("⚠️ [SEND] Compliment %s persisted but counter update failed for %s: %v",
			compliment.ID, recipient.Username, err)
	}

	// 8. Best-effort notifications, off the request path.
	go s.notifyRecipient(&recipient)

	return &compliment, nil
}

// notifyRecipient fans out push and email alerts. Failures are logged and
// dropped; delivery of the compliment itself already succeeded.
func (s *WallService) notifyRecipient(recipient *models.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.push != nil {
		var tokens []string
		err := s.db.WithContext(ctx).Model(&models.DeviceToken{}).
			Where("user_id = ?", recipient.ID).
			Pluck("token", &tokens).Error
		if err != nil {
			log.Printf("⚠️ [NOTIFY] Failed to load device tokens for %s: %v", recipient.Username, err)
		} else if len(tokens) > 0 {
			if err := s.push.SendComplimentAlert(ctx, tokens); err != nil {
				log.Printf("⚠️ [NOTIFY] Push to %s failed: %v", recipient.Username, err)
			}
		}
	}

	if s.mailer != nil {
		if err := s.mailer.SendComplimentReceived(ctx, recipient.Email, recipient.Username); err != nil {
			log.Printf("⚠️ [NOTIFY] Email to %s failed: %v", recipient.Username, err)
		}
	}
}
