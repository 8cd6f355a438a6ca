package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

func TestInboxOrderingAndCounts(t *testing.T) {
	s := newTestService(t, approveAll())
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	now := time.Now()
	oldest := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "you helped me move last weekend", IsRead: true,
		CreatedAt: now.Add(-48 * time.Hour),
	})
	middle := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "your notes saved my whole semester", IsRead: false,
		CreatedAt: now.Add(-2 * time.Hour),
	})
	newest := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "great question in class this morning", IsRead: false,
		CreatedAt: now.Add(-30 * time.Second),
	})
	// Someone else's compliment never leaks into bob's inbox.
	seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: "uid-carol", ToUsername: "carol",
		Message: "thanks for covering my shift yesterday", CreatedAt: now,
	})

	listing, err := s.Inbox(context.Background(), bob.ID, false)
	require.NoError(t, err)
	require.Len(t, listing.Compliments, 3)
	assert.Equal(t, 3, listing.Total)
	assert.Equal(t, 2, listing.Unread)
	assert.Equal(t, newest.ID, listing.Compliments[0].ID)
	assert.Equal(t, middle.ID, listing.Compliments[1].ID)
	assert.Equal(t, oldest.ID, listing.Compliments[2].ID)
	assert.Equal(t, "just now", listing.Compliments[0].Timestamp)
}

func TestInboxUnreadOnlyKeepsFullCounts(t *testing.T) {
	s := newTestService(t, approveAll())
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	read := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "you brighten up every meeting", IsRead: true,
		CreatedAt: time.Now().Add(-time.Hour),
	})
	unread := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "your playlist got us through finals",
		CreatedAt: time.Now(),
	})

	listing, err := s.Inbox(context.Background(), bob.ID, true)
	require.NoError(t, err)
	require.Len(t, listing.Compliments, 1)
	assert.Equal(t, unread.ID, listing.Compliments[0].ID)
	assert.NotEqual(t, read.ID, listing.Compliments[0].ID)
	assert.Equal(t, 2, listing.Total, "counts describe the whole inbox")
	assert.Equal(t, 1, listing.Unread)
}

func TestInboxEmpty(t *testing.T) {
	s := newTestService(t, approveAll())
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	listing, err := s.Inbox(context.Background(), bob.ID, false)
	require.NoError(t, err)
	assert.NotNil(t, listing.Compliments)
	assert.Empty(t, listing.Compliments)
	assert.Zero(t, listing.Total)
	assert.Zero(t, listing.Unread)
}

func TestMarkRead(t *testing.T) {
	s := newTestService(t, approveAll())
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")

	target := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "you always share your snacks", CreatedAt: time.Now(),
	})
	other := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "thanks for the ride home friday", CreatedAt: time.Now(),
	})

	entry, err := s.MarkRead(context.Background(), bob.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, entry.IsRead)

	// Only the targeted compliment flipped.
	var stored models.Compliment
	require.NoError(t, s.db.First(&stored, "id = ?", other.ID).Error)
	assert.False(t, stored.IsRead)

	// Idempotent.
	entry, err = s.MarkRead(context.Background(), bob.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, entry.IsRead)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	s := newTestService(t, approveAll())
	bob := seedUser(t, s, "uid-bob", "bob", "bob@example.com")
	seedUser(t, s, "uid-carol", "carol", "carol@example.com")

	c := seedCompliment(t, s, &models.Compliment{
		ID: uuid.New(), ToUserID: bob.ID, ToUsername: bob.Username,
		Message: "your study group is the best", CreatedAt: time.Now(),
	})

	_, err := s.MarkRead(context.Background(), "uid-carol", c.ID)
	assert.ErrorIs(t, err, ErrComplimentNotFound)

	_, err = s.MarkRead(context.Background(), bob.ID, uuid.New())
	assert.ErrorIs(t, err, ErrComplimentNotFound)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "seconds ago", t: now.Add(-20 * time.Second), want: "just now"},
		{name: "one minute", t: now.Add(-90 * time.Second), want: "1 minute ago"},
		{name: "minutes", t: now.Add(-45 * time.Minute), want: "45 minutes ago"},
		{name: "one hour", t: now.Add(-61 * time.Minute), want: "1 hour ago"},
		{name: "hours", t: now.Add(-5 * time.Hour), want: "5 hours ago"},
		{name: "one day", t: now.Add(-25 * time.Hour), want: "1 day ago"},
		{name: "days", t: now.Add(-3 * 24 * time.Hour), want: "3 days ago"},
		{name: "past a week", t: now.Add(-10 * 24 * time.Hour), want: "Mar 5, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.t, now))
		})
	}
}
