// internal/service/inbox.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

// InboxListing is everything the inbox page needs in one query round-trip.
type InboxListing struct {
	Compliments []models.InboxEntry `json:"compliments"`
	Total       int                 `json:"total"`
	Unread      int                 `json:"unread"`
}

// Inbox returns the recipient's compliments newest-first. With unreadOnly the
// entries are filtered but the counts still describe the whole inbox.
func (s *WallService) Inbox(ctx context.Context, userID string, unreadOnly bool) (*InboxListing, error) {
	var compliments []models.Compliment
	err := s.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&compliments).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	listing := &InboxListing{Total: len(compliments), Compliments: []models.InboxEntry{}}
	for _, c := range compliments {
		if !c.IsRead {
			listing.Unread++
		}
		if unreadOnly && c.IsRead {
			continue
		}
		listing.Compliments = append(listing.Compliments, models.InboxEntry{
			ID:        c.ID,
			Message:   c.Message,
			Timestamp: RelativeTime(c.CreatedAt, now),
			CreatedAt: c.CreatedAt,
			IsRead:    c.IsRead,
		})
	}
	return listing, nil
}

// MarkRead flips the read flag on exactly one compliment, scoped to its
// recipient. Idempotent: marking a read compliment again succeeds.
func (s *WallService) MarkRead(ctx context.Context, userID string, complimentID uuid.UUID) (*models.InboxEntry, error) {
	var compliment models.Compliment
	err := s.db.WithContext(ctx).
		Where("id = ? AND to_user_id = ?", complimentID, userID).
		First(&compliment).Error
	if err != nil {
		return nil, ErrComplimentNotFound
	}

	if !compliment.IsRead {
		err = s.db.WithContext(ctx).Model(&compliment).
			UpdateColumn("is_read", true).Error
		if err != nil {
			return nil, err
		}
		compliment.IsRead = true
	}

	return &models.InboxEntry{
		ID:        compliment.ID,
		Message:   compliment.Message,
		Timestamp: RelativeTime(compliment.CreatedAt, time.Now()),
		CreatedAt: compliment.CreatedAt,
		IsRead:    compliment.IsRead,
	}, nil
}

// RelativeTime renders a creation timestamp the way the inbox shows it:
// "just now" under a minute, then minutes, hours, days, and an absolute date
// past a week.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return pluralize(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return pluralize(int(d.Hours()), "hour") + " ago"
	case d < 7*24*time.Hour:
		return pluralize(int(d.Hours()/24), "day") + " ago"
	default:
		return t.Format("Jan 2, 2006")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
