// internal/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/Athycodz/CoMpliment-Walll/internal/moderation"
)

var (
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrSelfSend           = errors.New("you cannot send a compliment to yourself")
	ErrInvalidLength      = errors.New("message must be between 10 and 500 characters")
	ErrComplimentNotFound = errors.New("compliment not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
)

// QuickFilterError carries the rule-based rejection reason back to the form.
type QuickFilterError struct {
	Reason  moderation.FilterReason
	Message string
}

func (e *QuickFilterError) Error() string {
	return e.Message
}

// ModerationError is a rejection by the external classifier.
type ModerationError struct {
	Reason string
}

func (e *ModerationError) Error() string {
	return fmt.Sprintf("compliment rejected by moderation: %s", e.Reason)
}
