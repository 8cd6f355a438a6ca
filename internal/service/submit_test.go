package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Athycodz/CoMpliment-Walll/internal/moderation"
	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

const validMessage = "your presentation today genuinely inspired me"

func TestSendRecipientNotFound(t *testing.T) {
	mod := approveAll()
	s := newTestService(t, mod)
	seedUser(t, s, "uid-sender", "alice", "alice@example.com")

	_, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
		To: "nobody", Message: validMessage,
	})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
	assert.Zero(t, mod.calls)
	assert.Zero(t, countCompliments(t, s))
}

func TestSendSelfSend(t *testing.T) {
	s := newTestService(t, approveAll())
	seedUser(t, s, "uid-alice", "alice", "alice@example.com")

	_, err := s.Send(context.Background(), "uid-alice", &models.SendComplimentRequest{
		To: "alice", Message: validMessage,
	})
	assert.ErrorIs(t, err, ErrSelfSend)
	assert.Zero(t, countCompliments(t, s))
}

func TestSendLengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{name: "nine characters", message: "a b c d e", wantErr: true},
		{name: "ten characters five words", message: "a b c d ef", wantErr: false},
		{name: "exactly five hundred characters", message: "one two three four " + strings.Repeat("x", 481), wantErr: false},
		{name: "five hundred and one characters", message: "one two three four " + strings.Repeat("x", 482), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, approveAll())
			seedUser(t, s, "uid-sender", "alice", "alice@example.com")
			seedUser(t, s, "uid-bob", "bob", "bob@example.com")

			_, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
				To: "bob", Message: tt.message,
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLength)
			} else {
				assert.NoError(t, err)
			}
			waitBackground()
		})
	}
}

func TestSendQuickFilterRejection(t *testing.T) {
	tests := []struct {
		name    string
		message string
		reason  moderation.FilterReason
	}{
		{name: "too few words", message: "wonderful human being", reason: moderation.ReasonTooShort},
		{name: "disallowed word", message: "you are damn good at chess", reason: moderation.ReasonDisallowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := approveAll()
			s := newTestService(t, mod)
			seedUser(t, s, "uid-sender", "alice", "alice@example.com")
			seedUser(t, s, "uid-bob", "bob", "bob@example.com")

			_, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
				To: "bob", Message: tt.message,
			})

			var quickErr *QuickFilterError
			require.ErrorAs(t, err, &quickErr)
			assert.Equal(t, tt.reason, quickErr.Reason)
			assert.NotEmpty(t, quickErr.Message)
			assert.Zero(t, mod.calls, "quick filter must run before the external call")
			assert.Zero(t, countCompliments(t, s))
		})
	}
}

func TestSendModerationRejection(t *testing.T) {
	mod := &stubModerator{result: moderation.Result{
		Status:      models.ModerationRejected,
		Reason:      "backhanded compliment",
		AIModerated: true,
	}}
	s := newTestService(t, mod)
	seedUser(t, s, "uid-sender", "alice", "alice@example.com")
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	_, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
		To: "bob", Message: validMessage,
	})

	var modErr *ModerationError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, "backhanded compliment", modErr.Reason)
	assert.Zero(t, countCompliments(t, s))
	assert.Zero(t, complimentsReceived(t, s, bob.ID))
}

func TestSendSuccess(t *testing.T) {
	mod := approveAll()
	s := newTestService(t, mod)
	seedUser(t, s, "uid-sender", "alice", "alice@example.com")
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	compliment, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
		To: "@bob", Message: "  " + validMessage + "  ",
	})
	require.NoError(t, err)
	waitBackground()

	assert.Equal(t, bob.ID, compliment.ToUserID)
	assert.Equal(t, "bob", compliment.ToUsername)
	assert.Equal(t, validMessage, compliment.Message, "message is stored trimmed")
	assert.False(t, compliment.IsRead)
	assert.Equal(t, models.ModerationApproved, compliment.ModerationStatus)
	assert.True(t, compliment.AIModerated)

	assert.EqualValues(t, 1, countCompliments(t, s))
	assert.Equal(t, 1, complimentsReceived(t, s, bob.ID))
	assert.Equal(t, 1, mod.calls)

	var stored models.Compliment
	require.NoError(t, s.db.First(&stored, "id = ?", compliment.ID).Error)
	assert.NotEmpty(t, stored.ModerationRaw)
}

func TestSendFailOpenVerdictIsPersisted(t *testing.T) {
	mod := &stubModerator{result: moderation.Result{
		Status:      models.ModerationApproved,
		Reason:      "AI moderation unavailable, approved with caution",
		AIModerated: false,
	}}
	s := newTestService(t, mod)
	seedUser(t, s, "uid-sender", "alice", "alice@example.com")
	seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	compliment, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
		To: "bob", Message: validMessage,
	})
	require.NoError(t, err)
	waitBackground()

	assert.Equal(t, models.ModerationApproved, compliment.ModerationStatus)
	assert.False(t, compliment.AIModerated)
	assert.Equal(t, "AI moderation unavailable, approved with caution", compliment.AIReason)
	assert.Empty(t, compliment.ModerationRaw)
}

func TestSendCounterIncrementsPerCompliment(t *testing.T) {
	s := newTestService(t, approveAll())
	seedUser(t, s, "uid-sender", "alice", "alice@example.com")
	seedUser(t, s, "uid-carol", "carol", "carol@example.com")
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	for i := 0; i < 3; i++ {
		_, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
			To: "bob", Message: validMessage,
		})
		require.NoError(t, err)
	}
	_, err := s.Send(context.Background(), "uid-sender", &models.SendComplimentRequest{
		To: "carol", Message: validMessage,
	})
	require.NoError(t, err)
	waitBackground()

	assert.Equal(t, 3, complimentsReceived(t, s, bob.ID))
	assert.Equal(t, 1, complimentsReceived(t, s, "uid-carol"))
}
