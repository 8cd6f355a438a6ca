// internal/service/members.go
package service

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

// memberPalette is the fixed set of avatar colors. A member's color is the
// FNV-1a hash of their UID mod the palette size, so it is stable across
// sessions and machines.
var memberPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A",
	"#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E2",
}

// Directory is the member page payload: the (possibly filtered) grid plus
// aggregate figures over the whole membership.
type Directory struct {
	Members []models.MemberView   `json:"members"`
	Stats   models.DirectoryStats `json:"stats"`
}

// Members lists every user, filtered by a case-insensitive substring match on
// username or email when query is non-empty. Stats always cover all members.
func (s *WallService) Members(ctx context.Context, query string) (*Directory, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	query = strings.ToLower(strings.TrimSpace(query))

	dir := &Directory{Members: []models.MemberView{}}
	for _, u := range users {
		dir.Stats.TotalMembers++
		dir.Stats.TotalCompliments += u.ComplimentsReceived

		if query != "" &&
			!strings.Contains(strings.ToLower(u.Username), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		dir.Members = append(dir.Members, models.MemberView{
			ID:                  u.ID,
			Username:            u.Username,
			JoinedAgo:           JoinedAgo(u.CreatedAt, now),
			ComplimentsReceived: u.ComplimentsReceived,
			Color:               MemberColor(u.ID),
			AvatarURL:           u.AvatarURL,
		})
	}

	if dir.Stats.TotalMembers > 0 {
		avg := float64(dir.Stats.TotalCompliments) / float64(dir.Stats.TotalMembers)
		dir.Stats.AveragePerMember = int(math.Round(avg))
	}
	return dir, nil
}

// MemberColor derives the stable palette color for an identity reference.
func MemberColor(userID string) string {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return memberPalette[h.Sum32()%uint32(len(memberPalette))]
}

// JoinedAgo buckets a signup timestamp: today, days, weeks, months.
func JoinedAgo(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days < 1:
		return "today"
	case days < 7:
		return pluralize(days, "day") + " ago"
	case days < 30:
		return pluralize(days/7, "week") + " ago"
	default:
		return pluralize(days/30, "month") + " ago"
	}
}
